package ports

import (
	"context"

	"github.com/nearcare/directory-api/internal/core/domain"
)

// PageFilter carries pagination parameters. Page is 1-based.
type PageFilter struct {
	Page    int
	PerPage int
}

// Skip returns the number of records to skip for this page.
func (f PageFilter) Skip() int {
	return (f.Page - 1) * f.PerPage
}

// UserUpdate carries a partial-field merge for an existing user. Nil fields
// are left untouched. The record identifier is never writable.
type UserUpdate struct {
	Username    *string
	PhoneNumber *string
	Title       *string
	Description *string
	Role        *string
	Location    *domain.GeoPoint
}

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindNearest returns a page of users ordered by ascending distance from
	// the given point, plus the total number of records in the collection.
	FindNearest(ctx context.Context, longitude, latitude float64, filter PageFilter) ([]*domain.User, int64, error)
	// FindAll returns a page of users in store-native order, plus the total count.
	FindAll(ctx context.Context, filter PageFilter) ([]*domain.User, int64, error)
	UpdateByID(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
}
