package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nearcare/directory-api/internal/api"
	"github.com/nearcare/directory-api/internal/api/handler"
	"github.com/nearcare/directory-api/internal/core/domain"
	"github.com/nearcare/directory-api/internal/core/ports"
	"github.com/nearcare/directory-api/internal/core/service"
)

// stubUserService implements ports.UserService through overridable function
// fields; unset operations fail the test that reaches them.
type stubUserService struct {
	t            *testing.T
	registerFn   func(ctx context.Context, in ports.RegisterInput) (string, error)
	loginFn      func(ctx context.Context, username, password string) (string, error)
	listNearFn   func(ctx context.Context, in ports.NearestInput) (*ports.ListResult, error)
	listAllFn    func(ctx context.Context, in ports.ListInput) (*ports.ListResult, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn     func(ctx context.Context, id string, in ports.UpdateInput) (*domain.User, error)
	deleteFn     func(ctx context.Context, id string) error
	createUserFn func(ctx context.Context, in ports.CreateUserInput) error
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	if s.registerFn == nil {
		s.t.Fatal("unexpected call to Register")
	}
	return s.registerFn(ctx, in)
}

func (s *stubUserService) Login(ctx context.Context, username, password string) (string, error) {
	if s.loginFn == nil {
		s.t.Fatal("unexpected call to Login")
	}
	return s.loginFn(ctx, username, password)
}

func (s *stubUserService) ListNearest(ctx context.Context, in ports.NearestInput) (*ports.ListResult, error) {
	if s.listNearFn == nil {
		s.t.Fatal("unexpected call to ListNearest")
	}
	return s.listNearFn(ctx, in)
}

func (s *stubUserService) ListAll(ctx context.Context, in ports.ListInput) (*ports.ListResult, error) {
	if s.listAllFn == nil {
		s.t.Fatal("unexpected call to ListAll")
	}
	return s.listAllFn(ctx, in)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.getByIDFn == nil {
		s.t.Fatal("unexpected call to GetByID")
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubUserService) UpdateByID(ctx context.Context, id string, in ports.UpdateInput) (*domain.User, error) {
	if s.updateFn == nil {
		s.t.Fatal("unexpected call to UpdateByID")
	}
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) DeleteByID(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		s.t.Fatal("unexpected call to DeleteByID")
	}
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) CreateUser(ctx context.Context, in ports.CreateUserInput) error {
	if s.createUserFn == nil {
		s.t.Fatal("unexpected call to CreateUser")
	}
	return s.createUserFn(ctx, in)
}

type stubRevoker struct {
	revoked []string
	err     error
}

func (s *stubRevoker) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return s.err
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

// execute runs a handler the way the router does: errors flow into the
// central HTTPErrorHandler, so the recorder holds the final response.
func execute(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	users := &stubUserService{t: t, registerFn: func(_ context.Context, in ports.RegisterInput) (string, error) {
		if in.Username != "alice" || in.Password != "pw123" {
			t.Fatalf("unexpected input: %+v", in)
		}
		if in.Longitude == nil || *in.Longitude != 76.7 {
			t.Fatalf("longitude not forwarded: %v", in.Longitude)
		}
		return "token-abc", nil
	}}
	h := handler.NewAuthHandler(users, nil, nil)

	req := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"pw123","longitude":76.7,"latitude":30.7}`)
	rec := httptest.NewRecorder()
	execute(e, e.NewContext(req, rec), h.Register)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["token"] != "token-abc" {
		t.Fatalf("unexpected token: %v", body["token"])
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newEcho()
	h := handler.NewAuthHandler(&stubUserService{t: t}, nil, nil)

	req := jsonRequest(http.MethodPost, "/api/auth/register", `{"username":"alice"}`)
	rec := httptest.NewRecorder()
	execute(e, e.NewContext(req, rec), h.Register)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "All fields are required" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAuthHandler_Register_DuplicateIsGenericFailure(t *testing.T) {
	e := newEcho()
	users := &stubUserService{t: t, registerFn: func(context.Context, ports.RegisterInput) (string, error) {
		return "", domain.ErrUserExists
	}}
	h := handler.NewAuthHandler(users, nil, nil)

	req := jsonRequest(http.MethodPost, "/api/auth/register", `{"username":"alice","password":"pw"}`)
	rec := httptest.NewRecorder()
	execute(e, e.NewContext(req, rec), h.Register)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Error registering user" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	users := &stubUserService{t: t, loginFn: func(_ context.Context, username, password string) (string, error) {
		if username != "alice" || password != "pw123" {
			t.Fatalf("unexpected credentials: %s/%s", username, password)
		}
		return "token-xyz", nil
	}}
	h := handler.NewAuthHandler(users, nil, nil)

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pw123"}`)
	rec := httptest.NewRecorder()
	execute(e, e.NewContext(req, rec), h.Login)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["token"] != "token-xyz" {
		t.Fatalf("unexpected token: %v", body["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	users := &stubUserService{t: t, loginFn: func(context.Context, string, string) (string, error) {
		return "", domain.ErrInvalidCredentials
	}}
	h := handler.NewAuthHandler(users, nil, nil)

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`)
	rec := httptest.NewRecorder()
	execute(e, e.NewContext(req, rec), h.Login)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Invalid credentials" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	tokens := service.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue("user-1", "user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	revoker := &stubRevoker{}
	h := handler.NewAuthHandler(&stubUserService{t: t}, tokens, revoker)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	execute(e, e.NewContext(req, rec), h.Logout)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(revoker.revoked) != 1 || revoker.revoked[0] != token {
		t.Fatalf("token not handed to the revoker: %v", revoker.revoked)
	}
	if body := decodeBody(t, rec); body["message"] != "Logged out" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAuthHandler_Logout_InvalidToken(t *testing.T) {
	e := newEcho()
	tokens := service.NewTokenService("secret", time.Hour)
	revoker := &stubRevoker{}
	h := handler.NewAuthHandler(&stubUserService{t: t}, tokens, revoker)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec := httptest.NewRecorder()
	execute(e, e.NewContext(req, rec), h.Logout)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("invalid token must not reach the revoker")
	}
}
