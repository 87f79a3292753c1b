package models

import (
	"time"

	"github.com/google/uuid"
)

type ToneProfile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ReinforcedPhrases  string    `gorm:"type:text;not null;default:'[]'"` // JSON string
	DiscouragedPhrases string    `gorm:"type:text;not null;default:'[]'"` // JSON string
	TargetLength       int       `gorm:"not null;default:0"`
	Exemplars          string    `gorm:"type:text;not null;default:'[]'"` // JSON string
	NotesAnalyzed      int       `gorm:"not null;default:0"`
	LearningComplete   bool      `gorm:"not null;default:false"`
	StyleSummary       *string   `gorm:"type:text"` // JSON, set by deep analysis
	LastUpdated        time.Time
	CreatedAt          time.Time
}
