package repositories

import (
	"context"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
)

type ToneProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.ToneProfile, error)
	// Save upserts the profile. Concurrent saves are last-write-wins.
	Save(ctx context.Context, profile *entities.ToneProfile) error
}
