package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ekoink.backend/internal/domain/entities"
	"ekoink.backend/internal/infrastructure/models"
)

type UsageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

func (r *UsageRepository) GetOrCreate(ctx context.Context, accountID uuid.UUID, year, month int) (*entities.UsageCounter, error) {
	var m models.UsageCounter
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND year = ? AND month = ?", accountID, year, month).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.UsageCounter{
			ID:        uuid.New(),
			AccountID: accountID,
			Year:      year,
			Month:     month,
		}
		if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
			return nil, err
		}
		return r.toEntity(&m), nil
	}
	if err != nil {
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *UsageRepository) IncrementAPICalls(ctx context.Context, accountID uuid.UUID, year, month int) error {
	if _, err := r.GetOrCreate(ctx, accountID, year, month); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.UsageCounter{}).
		Where("account_id = ? AND year = ? AND month = ?", accountID, year, month).
		Updates(map[string]interface{}{
			"api_calls":  gorm.Expr("api_calls + 1"),
			"updated_at": time.Now(),
		}).Error
}

func (r *UsageRepository) RecordCardSent(ctx context.Context, accountID uuid.UUID, year, month int, amountCents int64) error {
	if _, err := r.GetOrCreate(ctx, accountID, year, month); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.UsageCounter{}).
		Where("account_id = ? AND year = ? AND month = ?", accountID, year, month).
		Updates(map[string]interface{}{
			"cards_sent":        gorm.Expr("cards_sent + 1"),
			"amount_owed_cents": gorm.Expr("amount_owed_cents + ?", amountCents),
			"updated_at":        time.Now(),
		}).Error
}

func (r *UsageRepository) toEntity(m *models.UsageCounter) *entities.UsageCounter {
	return &entities.UsageCounter{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Year:            m.Year,
		Month:           m.Month,
		CardsSent:       m.CardsSent,
		APICalls:        m.APICalls,
		AmountOwedCents: m.AmountOwedCents,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
