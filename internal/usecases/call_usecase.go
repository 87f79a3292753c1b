package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/domain/repositories"
)

// CallUsecase ingests sales-call records whose transcripts feed note
// generation.
type CallUsecase struct {
	callRepo repositories.CallRepository
}

func NewCallUsecase(callRepo repositories.CallRepository) *CallUsecase {
	return &CallUsecase{callRepo: callRepo}
}

func (u *CallUsecase) Create(ctx context.Context, accountID, userID uuid.UUID, input *entities.CreateCallInput) (*entities.Call, error) {
	call := &entities.Call{
		AccountID:       accountID,
		UserID:          userID,
		DealID:          input.DealID,
		Transcript:      input.Transcript,
		Summary:         null.NewString(input.Summary, input.Summary != ""),
		RecordingURL:    null.NewString(input.RecordingURL, input.RecordingURL != ""),
		DurationSeconds: input.DurationSeconds,
	}
	if err := u.callRepo.Create(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

func (u *CallUsecase) GetByID(ctx context.Context, accountID, callID uuid.UUID) (*entities.Call, error) {
	call, err := u.callRepo.GetByID(ctx, callID)
	if err != nil {
		return nil, err
	}
	if call.AccountID != accountID {
		return nil, domainerrors.ErrNotFound
	}
	return call, nil
}

func (u *CallUsecase) List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Call, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.callRepo.ListByAccount(ctx, accountID, limit, offset)
}
