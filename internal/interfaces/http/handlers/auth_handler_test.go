package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/interfaces/http/middleware"
	"ekoink.backend/internal/usecases"
	"ekoink.backend/pkg/jwt"
)

type authServiceStub struct {
	registerFn func(ctx context.Context, input *entities.CreateUserInput) (*usecases.AuthResult, error)
	loginFn    func(ctx context.Context, input *entities.LoginInput) (*usecases.AuthResult, error)
}

func (s *authServiceStub) Register(ctx context.Context, input *entities.CreateUserInput) (*usecases.AuthResult, error) {
	return s.registerFn(ctx, input)
}
func (s *authServiceStub) Login(ctx context.Context, input *entities.LoginInput) (*usecases.AuthResult, error) {
	return s.loginFn(ctx, input)
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &authServiceStub{
		registerFn: func(_ context.Context, input *entities.CreateUserInput) (*usecases.AuthResult, error) {
			require.Equal(t, "dana@acme.io", input.Email)
			require.Equal(t, "Acme", input.CompanyName)
			return &usecases.AuthResult{
				User:   &entities.User{ID: uuid.New(), Email: input.Email, Name: input.Name, Role: entities.UserRoleOwner},
				Tokens: &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			}, nil
		},
	}
	h := NewAuthHandler(svc, nil)
	r := gin.New()
	r.POST("/auth/register", h.Register)

	body := `{"email":"dana@acme.io","name":"Dana","password":"hunter2hunter2","companyName":"Acme"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"role":"OWNER"`)
	require.Contains(t, w.Body.String(), `"accessToken":"access"`)
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &authServiceStub{
		registerFn: func(context.Context, *entities.CreateUserInput) (*usecases.AuthResult, error) {
			return nil, domainerrors.ErrAlreadyExists
		},
	}
	h := NewAuthHandler(svc, nil)
	r := gin.New()
	r.POST("/auth/register", h.Register)

	body := `{"email":"dana@acme.io","name":"Dana","password":"hunter2hunter2","companyName":"Acme"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "already exists")
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(&authServiceStub{}, nil)
	r := gin.New()
	r.POST("/auth/register", h.Register)

	// password below the minimum length
	body := `{"email":"dana@acme.io","name":"Dana","password":"short","companyName":"Acme"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &authServiceStub{
		loginFn: func(_ context.Context, input *entities.LoginInput) (*usecases.AuthResult, error) {
			if input.Password != "hunter2hunter2" {
				return nil, domainerrors.ErrInvalidCredentials
			}
			return &usecases.AuthResult{
				User:   &entities.User{ID: uuid.New(), Email: input.Email},
				Tokens: &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			}, nil
		},
	}
	h := NewAuthHandler(svc, nil)
	r := gin.New()
	r.POST("/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"dana@acme.io","password":"hunter2hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"accessToken":"access"`)

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"dana@acme.io","password":"wrong-password"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	accountID := uuid.New()

	h := NewAuthHandler(&authServiceStub{}, nil)
	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.AccountIDKey, accountID)
		c.Set(middleware.UserRoleKey, "OWNER")
		c.Next()
	}, h.Me)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
	require.Contains(t, w.Body.String(), accountID.String())
	require.Contains(t, w.Body.String(), `"role":"OWNER"`)
}
