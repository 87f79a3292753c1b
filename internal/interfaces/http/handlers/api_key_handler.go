package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/interfaces/http/middleware"
	"ekoink.backend/internal/interfaces/http/response"
)

type ApiKeyService interface {
	Create(ctx context.Context, accountID uuid.UUID, userID *uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error)
	List(ctx context.Context, accountID uuid.UUID) ([]*entities.ApiKey, error)
	Revoke(ctx context.Context, accountID, keyID uuid.UUID) error
}

// ApiKeyHandler handles API key management from the dashboard
type ApiKeyHandler struct {
	apiKeyUsecase ApiKeyService
}

func NewApiKeyHandler(apiKeyUsecase ApiKeyService) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyUsecase: apiKeyUsecase}
}

// Create mints a new key. The response is the only time the secret is shown.
// POST /api/v1/api-keys
func (h *ApiKeyHandler) Create(c *gin.Context) {
	var input entities.CreateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	resp, err := h.apiKeyUsecase.Create(c.Request.Context(), accountID, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// List returns all of the account's keys, revoked ones included
// GET /api/v1/api-keys
func (h *ApiKeyHandler) List(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	keys, err := h.apiKeyUsecase.List(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, keys)
}

// Revoke soft-deletes a key
// DELETE /api/v1/api-keys/:id
func (h *ApiKeyHandler) Revoke(c *gin.Context) {
	keyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid API key ID"))
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	if err := h.apiKeyUsecase.Revoke(c.Request.Context(), accountID, keyID); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("API key not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}
