package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	AccountID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string    `gorm:"type:varchar(100);not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Role          string    `gorm:"type:varchar(50);not null;default:'MEMBER'"`
	NotesApproved int       `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
