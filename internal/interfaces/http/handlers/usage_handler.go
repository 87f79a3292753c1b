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

type UsageService interface {
	CurrentUsage(ctx context.Context, accountID uuid.UUID) (*entities.UsageCounter, error)
}

// UsageHandler exposes the current month's billing counters.
type UsageHandler struct {
	usageUsecase UsageService
}

func NewUsageHandler(usageUsecase UsageService) *UsageHandler {
	return &UsageHandler{usageUsecase: usageUsecase}
}

// Current returns this month's usage counter
// GET /api/v1/usage
func (h *UsageHandler) Current(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	usage, err := h.usageUsecase.CurrentUsage(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, usage)
}
