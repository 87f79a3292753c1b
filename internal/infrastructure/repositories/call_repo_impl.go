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

type CallRepository struct {
	db *gorm.DB
}

func NewCallRepository(db *gorm.DB) *CallRepository {
	return &CallRepository{db: db}
}

func (r *CallRepository) Create(ctx context.Context, call *entities.Call) error {
	m := r.toModel(call)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	call.ID = m.ID
	call.CreatedAt = m.CreatedAt
	call.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *CallRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Call, error) {
	var m models.Call
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *CallRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Call, error) {
	var ms []models.Call
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Call, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *CallRepository) toModel(e *entities.Call) *models.Call {
	return &models.Call{
		ID:              e.ID,
		AccountID:       e.AccountID,
		UserID:          e.UserID,
		DealID:          e.DealID,
		Transcript:      e.Transcript,
		Summary:         e.Summary.Ptr(),
		RecordingURL:    e.RecordingURL.Ptr(),
		DurationSeconds: e.DurationSeconds,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *CallRepository) toEntity(m *models.Call) *entities.Call {
	return &entities.Call{
		ID:              m.ID,
		AccountID:       m.AccountID,
		UserID:          m.UserID,
		DealID:          m.DealID,
		Transcript:      m.Transcript,
		Summary:         null.StringFromPtr(m.Summary),
		RecordingURL:    null.StringFromPtr(m.RecordingURL),
		DurationSeconds: m.DurationSeconds,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
