package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Call is a sales-call record. The transcript feeds note generation.
type Call struct {
	ID              uuid.UUID   `json:"id"`
	AccountID       uuid.UUID   `json:"accountId"`
	UserID          uuid.UUID   `json:"userId"`
	DealID          *uuid.UUID  `json:"dealId,omitempty"`
	Transcript      string      `json:"transcript"`
	Summary         null.String `json:"summary,omitempty"`
	RecordingURL    null.String `json:"recordingUrl,omitempty"`
	DurationSeconds int         `json:"durationSeconds"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CreateCallInput is the call-ingestion payload
type CreateCallInput struct {
	DealID          *uuid.UUID `json:"dealId"`
	Transcript      string     `json:"transcript" binding:"required"`
	Summary         string     `json:"summary"`
	RecordingURL    string     `json:"recordingUrl"`
	DurationSeconds int        `json:"durationSeconds"`
}
