package handler

import "github.com/nearcare/directory-api/internal/core/ports"

// --- Request types ---

// updateUserRequest is a partial-field merge; nil fields are left untouched.
// The record identifier is addressed by query parameter and never writable.
type updateUserRequest struct {
	Username    *string  `json:"username"`
	PhoneNumber *string  `json:"phoneNumber"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Role        *string  `json:"role"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
}

type createUserRequest struct {
	Username    string `json:"username" validate:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Role        string `json:"role" validate:"required,oneof=user admin doctor ambulance"`
}

// --- Response types ---

// listUsersResponse is the paginated envelope shared by the nearest and
// unsorted listings. TotalPages comes from the count of all matching records.
type listUsersResponse struct {
	Users       []ports.UserSummary `json:"users"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
}
