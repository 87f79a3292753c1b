package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// NoteStatus represents the lifecycle state of a thank-you note
type NoteStatus string

const (
	NoteStatusPending   NoteStatus = "pending"
	NoteStatusDraft     NoteStatus = "draft"
	NoteStatusApproved  NoteStatus = "approved"
	NoteStatusSent      NoteStatus = "sent"
	NoteStatusDelivered NoteStatus = "delivered"
	NoteStatusFailed    NoteStatus = "failed"
)

// Note represents a thank-you note. DraftText is machine-authored,
// FinalText is the human-approved version that is physically mailed.
type Note struct {
	ID               uuid.UUID   `json:"id"`
	AccountID        uuid.UUID   `json:"accountId"`
	UserID           uuid.UUID   `json:"userId"`
	DealID           *uuid.UUID  `json:"dealId,omitempty"`
	CallID           *uuid.UUID  `json:"callId,omitempty"`
	RecipientName    string      `json:"recipientName"`
	RecipientAddress null.String `json:"recipientAddress,omitempty"`
	DraftText        string      `json:"draftText"`
	FinalText        null.String `json:"finalText,omitempty"`
	Status           NoteStatus  `json:"status"`
	EditDelta        *EditDelta  `json:"editDelta,omitempty"`
	HandwriteOrderID null.String `json:"handwriteOrderId,omitempty"`
	ApprovedAt       *time.Time  `json:"approvedAt,omitempty"`
	SentAt           *time.Time  `json:"sentAt,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// EditDelta is the immutable audit record of a single approval: the
// difference between the AI draft and the human-approved final text.
// It is historical evidence, never mutated after the approval.
type EditDelta struct {
	WasEdited             bool      `json:"wasEdited"`
	OriginalLength        int       `json:"originalLength"`
	FinalLength           int       `json:"finalLength"`
	LengthDelta           int       `json:"lengthDelta"`
	OriginalWordCount     int       `json:"originalWordCount"`
	FinalWordCount        int       `json:"finalWordCount"`
	OriginalSentenceCount int       `json:"originalSentenceCount"`
	FinalSentenceCount    int       `json:"finalSentenceCount"`
	RecordedAt            time.Time `json:"recordedAt"`
}

// ApproveNoteInput is the dashboard approval payload
type ApproveNoteInput struct {
	FinalText    string `json:"final_text" binding:"required"`
	FeedbackText string `json:"feedback_text"`
}

// ApproveNoteResponse reports the approval outcome plus which learning
// side effects were triggered.
type ApproveNoteResponse struct {
	Note                  *Note `json:"note"`
	ApprovedCount         int   `json:"approved_count"`
	ThresholdReached      bool  `json:"threshold_reached"`
	DeepAnalysisTriggered bool  `json:"deep_analysis_triggered"`
	AutoSendTriggered     bool  `json:"auto_send_triggered"`
}

// GenerateNoteInput requests an AI draft for a deal or call
type GenerateNoteInput struct {
	DealID        *uuid.UUID `json:"dealId"`
	CallID        *uuid.UUID `json:"callId"`
	RecipientName string     `json:"recipientName" binding:"required"`
}

// SendNoteInput carries the physical mail destination
type SendNoteInput struct {
	RecipientAddress string `json:"recipientAddress" binding:"required"`
}
