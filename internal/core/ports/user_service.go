package ports

import (
	"context"

	"github.com/nearcare/directory-api/internal/core/domain"
)

// RegisterInput carries the self-service registration payload. Longitude and
// Latitude are optional; when nil the fallback coordinates are used.
type RegisterInput struct {
	Username    string
	Password    string
	PhoneNumber string
	Title       string
	Description string
	Longitude   *float64
	Latitude    *float64
}

// CreateUserInput carries the administrative create-user payload. The caller
// never supplies a password or a location through this path.
type CreateUserInput struct {
	Username    string
	PhoneNumber string
	Title       string
	Description string
	Role        string
}

// NearestInput carries the parameters for a distance-sorted listing.
type NearestInput struct {
	Longitude float64
	Latitude  float64
	Page      int
	PerPage   int
}

// ListInput carries the parameters for an unsorted listing.
type ListInput struct {
	Page    int
	PerPage int
}

// UserSummary is the projection returned by list operations. It deliberately
// excludes the password hash and record metadata.
type UserSummary struct {
	ID          string          `json:"_id"`
	Username    string          `json:"username"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Location    domain.GeoPoint `json:"location"`
}

// ListResult is the paginated envelope returned by both list operations.
// TotalPages is computed from the count of all matching records.
type ListResult struct {
	Users       []UserSummary `json:"users"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// UpdateInput mirrors UserUpdate at the use-case boundary. Coordinate fields
// must be supplied together to replace the location.
type UpdateInput struct {
	Username    *string
	PhoneNumber *string
	Title       *string
	Description *string
	Role        *string
	Longitude   *float64
	Latitude    *float64
}

// UserService defines the use-case operations of the user directory.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (token string, err error)
	Login(ctx context.Context, username, password string) (token string, err error)
	ListNearest(ctx context.Context, in NearestInput) (*ListResult, error)
	ListAll(ctx context.Context, in ListInput) (*ListResult, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateByID(ctx context.Context, id string, in UpdateInput) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
	CreateUser(ctx context.Context, in CreateUserInput) error
}
