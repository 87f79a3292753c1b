package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CompanyName     string    `gorm:"type:varchar(255);not null"`
	BillingType     string    `gorm:"type:varchar(50);not null;default:'usage'"`
	APIMonthlyLimit int       `gorm:"not null;default:100"`
	CardPriceCents  int64     `gorm:"not null;default:325"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
