package repositories

import (
	"context"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	// IncrementNotesApproved bumps the lifetime approved-note counter and
	// returns the new value.
	IncrementNotesApproved(ctx context.Context, id uuid.UUID) (int, error)
}
