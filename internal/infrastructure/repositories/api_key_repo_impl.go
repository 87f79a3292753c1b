package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/infrastructure/models"
)

type ApiKeyRepository struct {
	db *gorm.DB
}

func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

func (r *ApiKeyRepository) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	m, err := r.toModel(apiKey)
	if err != nil {
		return err
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	apiKey.ID = m.ID
	apiKey.CreatedAt = m.CreatedAt
	apiKey.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByKeyHash excludes revoked keys so a revoked credential is
// indistinguishable from an unknown one.
func (r *ApiKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).
		Where("key_hash = ? AND revoked_at IS NULL", keyHash).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

func (r *ApiKeyRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entities.ApiKey, error) {
	var ms []models.ApiKey
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.ApiKey, 0, len(ms))
	for i := range ms {
		e, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func (r *ApiKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

func (r *ApiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.ApiKey{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_used_at": now,
			"updated_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ApiKeyRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.ApiKey{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Updates(map[string]interface{}{
			"revoked_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ApiKeyRepository) toModel(e *entities.ApiKey) (*models.ApiKey, error) {
	scopes, err := json.Marshal(e.Scopes)
	if err != nil {
		return nil, err
	}
	return &models.ApiKey{
		ID:         e.ID,
		AccountID:  e.AccountID,
		UserID:     e.UserID,
		Name:       e.Name,
		KeyPrefix:  e.KeyPrefix,
		KeyHash:    e.KeyHash,
		Scopes:     string(scopes),
		LastUsedAt: e.LastUsedAt,
		ExpiresAt:  e.ExpiresAt,
		RevokedAt:  e.RevokedAt,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}, nil
}

func (r *ApiKeyRepository) toEntity(m *models.ApiKey) (*entities.ApiKey, error) {
	var scopes []string
	if m.Scopes != "" {
		if err := json.Unmarshal([]byte(m.Scopes), &scopes); err != nil {
			return nil, err
		}
	}
	return &entities.ApiKey{
		ID:         m.ID,
		AccountID:  m.AccountID,
		UserID:     m.UserID,
		Name:       m.Name,
		KeyPrefix:  m.KeyPrefix,
		KeyHash:    m.KeyHash,
		Scopes:     scopes,
		LastUsedAt: m.LastUsedAt,
		ExpiresAt:  m.ExpiresAt,
		RevokedAt:  m.RevokedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}
