package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/interfaces/http/middleware"
	"ekoink.backend/internal/interfaces/http/response"
	"ekoink.backend/internal/usecases"
	"ekoink.backend/pkg/logger"
	"ekoink.backend/pkg/redis"
)

const (
	sessionCookieName = "session_id"
	sessionLifetime   = 7 * 24 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, input *entities.CreateUserInput) (*usecases.AuthResult, error)
	Login(ctx context.Context, input *entities.LoginInput) (*usecases.AuthResult, error)
}

// AuthHandler handles dashboard registration and login
type AuthHandler struct {
	authUsecase  AuthService
	sessionStore *redis.SessionStore
}

func NewAuthHandler(authUsecase AuthService, sessionStore *redis.SessionStore) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, sessionStore: sessionStore}
}

// createSession stores the token pair server-side and hands the browser an
// opaque session cookie. Session failure never blocks a successful login;
// the client still has its bearer tokens.
func (h *AuthHandler) createSession(c *gin.Context, result *usecases.AuthResult) {
	if h.sessionStore == nil {
		return
	}
	sessionID := uuid.NewString()
	err := h.sessionStore.CreateSession(c.Request.Context(), sessionID, &redis.SessionData{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, sessionLifetime)
	if err != nil {
		logger.Warn(c.Request.Context(), "failed to create dashboard session", zap.Error(err))
		return
	}
	c.SetCookie(sessionCookieName, sessionID, int(sessionLifetime.Seconds()), "/", "", false, true)
}

// Register creates an account and its owner user
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrAlreadyExists {
			response.Error(c, domainerrors.NewAppError(http.StatusConflict, "An account with this email already exists", err))
			return
		}
		response.Error(c, err)
		return
	}

	h.createSession(c, result)
	response.Success(c, http.StatusCreated, result)
}

// Login verifies credentials and issues a token pair
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrInvalidCredentials {
			response.Error(c, domainerrors.Unauthorized("Invalid email or password"))
			return
		}
		response.Error(c, err)
		return
	}

	h.createSession(c, result)
	response.Success(c, http.StatusOK, result)
}

// Logout drops the server-side session and clears the cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.sessionStore != nil {
		if sessionID, err := c.Cookie(sessionCookieName); err == nil && sessionID != "" {
			if err := h.sessionStore.DeleteSession(c.Request.Context(), sessionID); err != nil {
				logger.Warn(c.Request.Context(), "failed to delete dashboard session", zap.Error(err))
			}
		}
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true})
}

// Me returns the authenticated user's identity claims
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	accountID, _ := middleware.GetAccountID(c)
	role, _ := middleware.GetUserRole(c)

	response.Success(c, http.StatusOK, gin.H{
		"userId":    userID,
		"accountId": accountID,
		"role":      role,
	})
}
