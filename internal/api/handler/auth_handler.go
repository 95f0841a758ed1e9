package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nearcare/directory-api/internal/api/metrics"
	"github.com/nearcare/directory-api/internal/api/middleware"
	"github.com/nearcare/directory-api/internal/core/domain"
	"github.com/nearcare/directory-api/internal/core/ports"
)

// TokenRevoker records a verified token as revoked until it expires.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// AuthHandler handles registration, login, and (when a revoker is configured)
// logout.
type AuthHandler struct {
	users   ports.UserService
	tokens  ports.TokenIssuer
	revoker TokenRevoker
}

func NewAuthHandler(users ports.UserService, tokens ports.TokenIssuer, revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, revoker: revoker}
}

type registerRequest struct {
	Username    string   `json:"username" validate:"required"`
	Password    string   `json:"password" validate:"required"`
	PhoneNumber string   `json:"phoneNumber"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates a self-service account and returns a bearer token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	token, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Title:       req.Title,
		Description: req.Description,
		Longitude:   req.Longitude,
		Latitude:    req.Latitude,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingFields) {
			return err
		}
		// The duplicate-username case is deliberately not distinguished from
		// other persistence failures.
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error registering user"})
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.RoleUser).Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		Token:   token,
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	token, err := h.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrMissingFields) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return err
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error logging in"})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Logout revokes the presented token for the remainder of its lifetime. The
// route is only registered when a denylist store is configured.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, err := middleware.BearerToken(c)
	if err != nil {
		return err
	}
	if _, err := h.tokens.Verify(token); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if err := h.revoker.Revoke(c.Request().Context(), token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}
