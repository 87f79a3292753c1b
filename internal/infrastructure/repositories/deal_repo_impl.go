package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/infrastructure/models"
)

type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) Create(ctx context.Context, deal *entities.Deal) error {
	m := r.toModel(deal)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	deal.ID = m.ID
	deal.CreatedAt = m.CreatedAt
	deal.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *DealRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Deal, error) {
	var m models.Deal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *DealRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Deal, error) {
	var ms []models.Deal
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Deal, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *DealRepository) toModel(e *entities.Deal) *models.Deal {
	return &models.Deal{
		ID:            e.ID,
		AccountID:     e.AccountID,
		UserID:        e.UserID,
		CustomerName:  e.CustomerName,
		CustomerEmail: e.CustomerEmail.Ptr(),
		Company:       e.Company.Ptr(),
		AmountCents:   e.AmountCents,
		Stage:         e.Stage,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *DealRepository) toEntity(m *models.Deal) *entities.Deal {
	return &entities.Deal{
		ID:            m.ID,
		AccountID:     m.AccountID,
		UserID:        m.UserID,
		CustomerName:  m.CustomerName,
		CustomerEmail: null.StringFromPtr(m.CustomerEmail),
		Company:       null.StringFromPtr(m.Company),
		AmountCents:   m.AmountCents,
		Stage:         m.Stage,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
