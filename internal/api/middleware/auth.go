package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nearcare/directory-api/internal/api/metrics"
	"github.com/nearcare/directory-api/internal/core/ports"
)

// Denylist reports whether a token has been revoked. A nil Denylist keeps
// verification fully stateless.
type Denylist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Auth is the authentication gate: it extracts the bearer token, verifies it,
// and injects the decoded claims into the request context. Any valid token
// admits the request regardless of role; layer RBAC on top where a route
// needs it.
func Auth(verifier ports.TokenIssuer, denylist Denylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c)
			if err != nil {
				return err
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(c.Request().Context(), token)
				if err != nil || revoked {
					metrics.TokenVerificationsTotal.WithLabelValues("revoked").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				}
			}

			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
			c.Set("id", claims.UserID)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

// Decode returns the decoded claims of the request's bearer token without the
// admit/reject side effect. Extraction and verification rules match Auth.
func Decode(c echo.Context, verifier ports.TokenIssuer) (*ports.TokenClaims, error) {
	token, err := BearerToken(c)
	if err != nil {
		return nil, err
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return claims, nil
}

// BearerToken extracts the second whitespace-delimited segment of the
// Authorization header.
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	return parts[1], nil
}
