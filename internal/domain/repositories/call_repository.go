package repositories

import (
	"context"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
)

type CallRepository interface {
	Create(ctx context.Context, call *entities.Call) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Call, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Call, error)
}
