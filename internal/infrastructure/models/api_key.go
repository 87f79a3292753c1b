package models

import (
	"time"

	"github.com/google/uuid"
)

type ApiKey struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	AccountID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	Name       string     `gorm:"type:varchar(100);not null"`
	KeyPrefix  string     `gorm:"type:varchar(20);not null"`
	KeyHash    string     `gorm:"type:varchar(64);uniqueIndex;not null"` // SHA256 of secret
	Scopes     string     `gorm:"type:text;not null"`                    // JSON string
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
	RevokedAt  *time.Time `gorm:"index"` // soft delete; revoked keys stay for audit
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
