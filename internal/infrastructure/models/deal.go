package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Deal struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	AccountID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName  string    `gorm:"type:varchar(255);not null"`
	CustomerEmail *string   `gorm:"type:varchar(255)"`
	Company       *string   `gorm:"type:varchar(255)"`
	AmountCents   int64     `gorm:"not null;default:0"`
	Stage         string    `gorm:"type:varchar(50);not null;default:'closed_won'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
