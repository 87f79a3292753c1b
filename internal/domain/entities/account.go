package entities

import (
	"time"

	"github.com/google/uuid"
)

// BillingType determines how an account is charged for sent cards
type BillingType string

const (
	BillingTypeUsage BillingType = "usage"
	BillingTypeFlat  BillingType = "flat"
)

// Account represents a customer organisation. Users, API keys, notes and
// usage counters all hang off an account.
type Account struct {
	ID              uuid.UUID   `json:"id"`
	CompanyName     string      `json:"companyName"`
	BillingType     BillingType `json:"billingType"`
	APIMonthlyLimit int         `json:"apiMonthlyLimit"`
	CardPriceCents  int64       `json:"cardPriceCents"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
