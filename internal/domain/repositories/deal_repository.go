package repositories

import (
	"context"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
)

type DealRepository interface {
	Create(ctx context.Context, deal *entities.Deal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Deal, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Deal, error)
}
