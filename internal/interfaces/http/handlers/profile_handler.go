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

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.ToneProfile, error)
}

// ProfileHandler exposes the user's tone profile to the dashboard so reps
// can see what the system has learned about their writing.
type ProfileHandler struct {
	learningUsecase ProfileService
}

func NewProfileHandler(learningUsecase ProfileService) *ProfileHandler {
	return &ProfileHandler{learningUsecase: learningUsecase}
}

// Get returns the caller's tone profile
// GET /api/v1/tone-profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	profile, err := h.learningUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}
