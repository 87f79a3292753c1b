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

type NoteService interface {
	Generate(ctx context.Context, accountID, userID uuid.UUID, input *entities.GenerateNoteInput) (*entities.Note, error)
	Approve(ctx context.Context, accountID, noteID uuid.UUID, input *entities.ApproveNoteInput) (*entities.ApproveNoteResponse, error)
	Send(ctx context.Context, accountID, noteID uuid.UUID, input *entities.SendNoteInput) (*entities.Note, error)
	GetByID(ctx context.Context, accountID, noteID uuid.UUID) (*entities.Note, error)
	List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Note, error)
}

// NoteHandler handles the note lifecycle over both the dashboard and the
// external API.
type NoteHandler struct {
	noteUsecase NoteService
}

func NewNoteHandler(noteUsecase NoteService) *NoteHandler {
	return &NoteHandler{noteUsecase: noteUsecase}
}

// Generate drafts a note from a deal or call
// POST /v1/notes/generate
func (h *NoteHandler) Generate(c *gin.Context) {
	var input entities.GenerateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	if input.DealID == nil && input.CallID == nil {
		response.Error(c, domainerrors.BadRequest("Either dealId or callId is required"))
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

	note, err := h.noteUsecase.Generate(c.Request.Context(), accountID, userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, note)
}

// Approve records the human-approved final text
// POST /v1/notes/:id/approve
func (h *NoteHandler) Approve(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid note ID"))
		return
	}

	var input entities.ApproveNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	resp, err := h.noteUsecase.Approve(c.Request.Context(), accountID, noteID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Send mails an approved note
// POST /v1/notes/:id/send
func (h *NoteHandler) Send(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid note ID"))
		return
	}

	// The recipient address may already live on the note, so the body is optional.
	var input entities.SendNoteInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err)
			return
		}
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	note, err := h.noteUsecase.Send(c.Request.Context(), accountID, noteID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, note)
}

// Get returns one note
// GET /v1/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid note ID"))
		return
	}

	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	note, err := h.noteUsecase.GetByID(c.Request.Context(), accountID, noteID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Note not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, note)
}

// List returns the account's notes, newest first
// GET /v1/notes
func (h *NoteHandler) List(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notes, err := h.noteUsecase.List(c.Request.Context(), accountID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, notes)
}
