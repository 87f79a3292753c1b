package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/infrastructure/models"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	m := r.toModel(account)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	account.ID = m.ID
	account.CreatedAt = m.CreatedAt
	account.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *AccountRepository) Update(ctx context.Context, account *entities.Account) error {
	updates := map[string]interface{}{
		"company_name":      account.CompanyName,
		"billing_type":      string(account.BillingType),
		"api_monthly_limit": account.APIMonthlyLimit,
		"card_price_cents":  account.CardPriceCents,
		"updated_at":        time.Now(),
	}

	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", account.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) toModel(e *entities.Account) *models.Account {
	return &models.Account{
		ID:              e.ID,
		CompanyName:     e.CompanyName,
		BillingType:     string(e.BillingType),
		APIMonthlyLimit: e.APIMonthlyLimit,
		CardPriceCents:  e.CardPriceCents,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *AccountRepository) toEntity(m *models.Account) *entities.Account {
	return &entities.Account{
		ID:              m.ID,
		CompanyName:     m.CompanyName,
		BillingType:     entities.BillingType(m.BillingType),
		APIMonthlyLimit: m.APIMonthlyLimit,
		CardPriceCents:  m.CardPriceCents,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
