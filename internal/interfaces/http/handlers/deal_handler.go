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

type DealService interface {
	Create(ctx context.Context, accountID, userID uuid.UUID, input *entities.CreateDealInput) (*entities.Deal, error)
	GetByID(ctx context.Context, accountID, dealID uuid.UUID) (*entities.Deal, error)
	List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Deal, error)
}

type DealHandler struct {
	dealUsecase DealService
}

func NewDealHandler(dealUsecase DealService) *DealHandler {
	return &DealHandler{dealUsecase: dealUsecase}
}

// Create ingests a closed deal
// POST /v1/deals
func (h *DealHandler) Create(c *gin.Context) {
	var input entities.CreateDealInput
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

	deal, err := h.dealUsecase.Create(c.Request.Context(), accountID, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, deal)
}

// Get returns one deal
// GET /v1/deals/:id
func (h *DealHandler) Get(c *gin.Context) {
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid deal ID"))
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	deal, err := h.dealUsecase.GetByID(c.Request.Context(), accountID, dealID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Deal not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, deal)
}

// List returns the account's deals
// GET /v1/deals
func (h *DealHandler) List(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	deals, err := h.dealUsecase.List(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, deals)
}
