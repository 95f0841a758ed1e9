package domain

import "errors"

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleDoctor    = "doctor"
	RoleAmbulance = "ambulance"
)

// DefaultLongitude and DefaultLatitude are the fallback coordinates applied
// when a user is created without a location.
const (
	DefaultLongitude = 76.717873
	DefaultLatitude  = 30.704649
)

var ErrUserNotFound = errors.New("user not found")
var ErrMissingFields = errors.New("all fields are required")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidRole = errors.New("invalid role")

// ValidRole reports whether role is one of the four persisted role values.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleDoctor, RoleAmbulance:
		return true
	}
	return false
}

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude], always
// exactly two components; the store keeps a 2dsphere index on this field.
type GeoPoint struct {
	Type        string     `json:"type" bson:"type"`
	Coordinates [2]float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(longitude, latitude float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{longitude, latitude}}
}

// User is the sole persisted entity of the directory.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	PhoneNumber  string   `json:"phoneNumber,omitempty"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Location     GeoPoint `json:"location"`
	Role         string   `json:"role"`
}
