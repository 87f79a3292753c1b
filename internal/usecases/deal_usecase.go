package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/domain/repositories"
)

// DealUsecase is a thin CRM passthrough; deals exist so notes have
// something to thank the customer for.
type DealUsecase struct {
	dealRepo repositories.DealRepository
}

func NewDealUsecase(dealRepo repositories.DealRepository) *DealUsecase {
	return &DealUsecase{dealRepo: dealRepo}
}

func (u *DealUsecase) Create(ctx context.Context, accountID, userID uuid.UUID, input *entities.CreateDealInput) (*entities.Deal, error) {
	stage := input.Stage
	if stage == "" {
		stage = "closed_won"
	}
	deal := &entities.Deal{
		AccountID:     accountID,
		UserID:        userID,
		CustomerName:  input.CustomerName,
		CustomerEmail: null.NewString(input.CustomerEmail, input.CustomerEmail != ""),
		Company:       null.NewString(input.Company, input.Company != ""),
		AmountCents:   input.AmountCents,
		Stage:         stage,
	}
	if err := u.dealRepo.Create(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

func (u *DealUsecase) GetByID(ctx context.Context, accountID, dealID uuid.UUID) (*entities.Deal, error) {
	deal, err := u.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.AccountID != accountID {
		return nil, domainerrors.ErrNotFound
	}
	return deal, nil
}

func (u *DealUsecase) List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Deal, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.dealRepo.ListByAccount(ctx, accountID, limit, offset)
}
