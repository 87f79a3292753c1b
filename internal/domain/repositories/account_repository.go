package repositories

import (
	"context"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	Update(ctx context.Context, account *entities.Account) error
}
