package repositories

import (
	"context"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	// ListApprovedByUser returns up to limit approved notes with non-empty
	// final text, oldest first. Used by the deep style analysis.
	ListApprovedByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Note, error)
}
