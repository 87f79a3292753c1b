package repositories

import (
	"context"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
)

type UsageRepository interface {
	// GetOrCreate returns the counter row for (account, year, month),
	// creating a zeroed row if none exists.
	GetOrCreate(ctx context.Context, accountID uuid.UUID, year, month int) (*entities.UsageCounter, error)
	IncrementAPICalls(ctx context.Context, accountID uuid.UUID, year, month int) error
	// RecordCardSent bumps cards_sent and accrues the amount owed.
	RecordCardSent(ctx context.Context, accountID uuid.UUID, year, month int, amountCents int64) error
}
