package entities

import (
	"time"

	"github.com/google/uuid"
)

// UsageCounter holds one calendar month of usage for an account: cards
// physically sent, API calls made, and the running amount owed. It is both
// the billing record and the monthly quota gate.
type UsageCounter struct {
	ID              uuid.UUID `json:"id"`
	AccountID       uuid.UUID `json:"accountId"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	CardsSent       int       `json:"cardsSent"`
	APICalls        int       `json:"apiCalls"`
	AmountOwedCents int64     `json:"amountOwedCents"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
