package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nearcare/directory-api/internal/core/domain"
	"github.com/nearcare/directory-api/internal/core/ports"
)

const (
	defaultPage    = 1
	defaultPerPage = 10

	// adminDefaultPassword seeds records created through the administrative
	// path; it is hashed before persisting and never surfaced to the caller.
	adminDefaultPassword = "123"
)

// UserService implements the directory use cases.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, tokens ports.TokenIssuer, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, logger: logger}
}

// Register creates a self-service account. The role is always "user"; the
// location falls back to the default coordinates when none is supplied.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	if in.Username == "" || in.Password == "" {
		return "", domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		Title:        in.Title,
		Description:  in.Description,
		Location:     locationOrDefault(in.Longitude, in.Latitude),
		Role:         domain.RoleUser,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to register user")
		return "", err
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return token, nil
}

// Login authenticates by username and password. An unknown username and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrMissingFields
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", err
	}

	return token, nil
}

// ListNearest returns a page of users ordered by ascending distance from the
// given point.
func (s *UserService) ListNearest(ctx context.Context, in ports.NearestInput) (*ports.ListResult, error) {
	filter := pageFilter(in.Page, in.PerPage)

	users, total, err := s.repo.FindNearest(ctx, in.Longitude, in.Latitude, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch nearest users")
		return nil, err
	}

	return listResult(users, total, filter), nil
}

// ListAll returns a page of users in store-native order.
func (s *UserService) ListAll(ctx context.Context, in ports.ListInput) (*ports.ListResult, error) {
	filter := pageFilter(in.Page, in.PerPage)

	users, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch users")
		return nil, err
	}

	return listResult(users, total, filter), nil
}

// GetByID fetches a single record. The password hash never leaves the domain
// type's JSON boundary.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateByID merges the supplied fields into an existing record and returns
// the updated state. The identifier itself is never writable.
func (s *UserService) UpdateByID(ctx context.Context, id string, in ports.UpdateInput) (*domain.User, error) {
	if in.Role != nil && !domain.ValidRole(*in.Role) {
		return nil, domain.ErrInvalidRole
	}

	update := ports.UserUpdate{
		Username:    in.Username,
		PhoneNumber: in.PhoneNumber,
		Title:       in.Title,
		Description: in.Description,
		Role:        in.Role,
	}
	if in.Longitude != nil && in.Latitude != nil {
		loc := domain.NewGeoPoint(*in.Longitude, *in.Latitude)
		update.Location = &loc
	}

	return s.repo.UpdateByID(ctx, id, update)
}

// DeleteByID removes a record permanently. Deleting an already-deleted id
// reports not-found, not an error.
func (s *UserService) DeleteByID(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// CreateUser is the administrative create path: the password is a fixed
// default, the location is the fallback point, and the role must be one of
// the enumerated values.
func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) error {
	if in.Username == "" {
		return domain.ErrMissingFields
	}
	if !domain.ValidRole(in.Role) {
		return domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminDefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		Title:        in.Title,
		Description:  in.Description,
		Location:     domain.NewGeoPoint(domain.DefaultLongitude, domain.DefaultLatitude),
		Role:         in.Role,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", in.Username).Str("role", in.Role).Msg("failed to create user")
		return err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created by admin")
	return nil
}

func locationOrDefault(longitude, latitude *float64) domain.GeoPoint {
	lng := domain.DefaultLongitude
	lat := domain.DefaultLatitude
	if longitude != nil {
		lng = *longitude
	}
	if latitude != nil {
		lat = *latitude
	}
	return domain.NewGeoPoint(lng, lat)
}

func pageFilter(page, perPage int) ports.PageFilter {
	if page <= 0 {
		page = defaultPage
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return ports.PageFilter{Page: page, PerPage: perPage}
}

func listResult(users []*domain.User, total int64, filter ports.PageFilter) *ports.ListResult {
	summaries := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, ports.UserSummary{
			ID:          u.ID,
			Username:    u.Username,
			PhoneNumber: u.PhoneNumber,
			Title:       u.Title,
			Description: u.Description,
			Location:    u.Location,
		})
	}

	totalPages := int((total + int64(filter.PerPage) - 1) / int64(filter.PerPage))

	return &ports.ListResult{
		Users:       summaries,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
	}
}
