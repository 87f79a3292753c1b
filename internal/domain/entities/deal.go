package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Deal is a CRM passthrough record; notes reference the deal they thank
// the customer for.
type Deal struct {
	ID            uuid.UUID   `json:"id"`
	AccountID     uuid.UUID   `json:"accountId"`
	UserID        uuid.UUID   `json:"userId"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail null.String `json:"customerEmail,omitempty"`
	Company       null.String `json:"company,omitempty"`
	AmountCents   int64       `json:"amountCents"`
	Stage         string      `json:"stage"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// CreateDealInput is the deal-creation payload
type CreateDealInput struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail"`
	Company       string `json:"company"`
	AmountCents   int64  `json:"amountCents"`
	Stage         string `json:"stage"`
}
