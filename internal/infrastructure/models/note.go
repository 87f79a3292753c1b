package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	AccountID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	DealID           *uuid.UUID `gorm:"type:uuid"`
	CallID           *uuid.UUID `gorm:"type:uuid"`
	RecipientName    string     `gorm:"type:varchar(255);not null"`
	RecipientAddress *string    `gorm:"type:text"`
	DraftText        string     `gorm:"type:text;not null;default:''"`
	FinalText        *string    `gorm:"type:text"`
	Status           string     `gorm:"type:varchar(20);not null;index"`
	EditDelta        *string    `gorm:"type:text"` // JSON audit record, write-once
	HandwriteOrderID *string    `gorm:"type:varchar(100)"`
	ApprovedAt       *time.Time
	SentAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
