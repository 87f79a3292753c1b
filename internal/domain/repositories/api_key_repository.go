package repositories

import (
	"context"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
)

type ApiKeyRepository interface {
	Create(ctx context.Context, apiKey *entities.ApiKey) error
	// FindByKeyHash looks up a key by the SHA-256 hash of the presented
	// secret. Revoked keys are excluded at the query level.
	FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entities.ApiKey, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error)
	// TouchLastUsed stamps last_used_at without rewriting the whole row.
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
	Revoke(ctx context.Context, id uuid.UUID) error
}
