package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Call struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	AccountID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	DealID          *uuid.UUID `gorm:"type:uuid"`
	Transcript      string     `gorm:"type:text;not null"`
	Summary         *string    `gorm:"type:text"`
	RecordingURL    *string    `gorm:"type:text"`
	DurationSeconds int        `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
