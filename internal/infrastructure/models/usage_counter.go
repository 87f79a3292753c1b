package models

import (
	"time"

	"github.com/google/uuid"
)

type UsageCounter struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	AccountID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_account_period"`
	Year            int       `gorm:"not null;uniqueIndex:idx_usage_account_period"`
	Month           int       `gorm:"not null;uniqueIndex:idx_usage_account_period"`
	CardsSent       int       `gorm:"not null;default:0"`
	APICalls        int       `gorm:"not null;default:0"`
	AmountOwedCents int64     `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
