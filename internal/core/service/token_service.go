package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nearcare/directory-api/internal/core/domain"
	"github.com/nearcare/directory-api/internal/core/ports"
)

// TokenService issues and verifies HS256-signed bearer tokens carrying the
// user id and role. The signing secret is injected at construction and never
// read from ambient state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed token encoding the subject id and role with an
// expiration of now + TTL.
func (s *TokenService) Issue(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and decodes the claims. Malformed input, a
// wrong signature, a foreign signing method, and an expired token all surface
// as domain.ErrInvalidToken; nothing panics past this boundary.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{UserID: id, Role: role}, nil
}
