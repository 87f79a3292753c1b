package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/interfaces/http/middleware"
	"ekoink.backend/internal/interfaces/http/response"
)

type CallService interface {
	Create(ctx context.Context, accountID, userID uuid.UUID, input *entities.CreateCallInput) (*entities.Call, error)
	GetByID(ctx context.Context, accountID, callID uuid.UUID) (*entities.Call, error)
	List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Call, error)
}

type CallHandler struct {
	callUsecase CallService
}

func NewCallHandler(callUsecase CallService) *CallHandler {
	return &CallHandler{callUsecase: callUsecase}
}

// Create ingests a sales-call record
// POST /v1/calls
func (h *CallHandler) Create(c *gin.Context) {
	var input entities.CreateCallInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("API key is not bound to a user"))
		return
	}

	call, err := h.callUsecase.Create(c.Request.Context(), accountID, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, call)
}

// Get returns one call
// GET /v1/calls/:id
func (h *CallHandler) Get(c *gin.Context) {
	callID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid call ID"))
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	call, err := h.callUsecase.GetByID(c.Request.Context(), accountID, callID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Call not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, call)
}

// List returns the account's calls
// GET /v1/calls
func (h *CallHandler) List(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	calls, err := h.callUsecase.List(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, calls)
}
