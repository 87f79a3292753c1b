package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
	"ekoink.backend/internal/domain/repositories"
)

// UsageUsecase meters API traffic and enforces the monthly card quota.
type UsageUsecase struct {
	usageRepo   repositories.UsageRepository
	accountRepo repositories.AccountRepository
	now         func() time.Time
}

func NewUsageUsecase(usageRepo repositories.UsageRepository, accountRepo repositories.AccountRepository) *UsageUsecase {
	return &UsageUsecase{
		usageRepo:   usageRepo,
		accountRepo: accountRepo,
		now:         time.Now,
	}
}

// QuotaStatus is the quota decision for a card send.
type QuotaStatus struct {
	Allowed bool
	Limit   int
	Usage   int
}

// CheckCardQuota reports whether the account may send another card this
// month. Flat-billed accounts are never throttled.
func (u *UsageUsecase) CheckCardQuota(ctx context.Context, accountID uuid.UUID) (*QuotaStatus, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.BillingType == entities.BillingTypeFlat {
		return &QuotaStatus{Allowed: true, Limit: account.APIMonthlyLimit}, nil
	}

	year, month := u.period()
	counter, err := u.usageRepo.GetOrCreate(ctx, accountID, year, month)
	if err != nil {
		return nil, err
	}
	return &QuotaStatus{
		Allowed: counter.CardsSent < account.APIMonthlyLimit,
		Limit:   account.APIMonthlyLimit,
		Usage:   counter.CardsSent,
	}, nil
}

// MeterAPICall counts one authorized API call against the current month.
func (u *UsageUsecase) MeterAPICall(ctx context.Context, accountID uuid.UUID) error {
	year, month := u.period()
	return u.usageRepo.IncrementAPICalls(ctx, accountID, year, month)
}

// RecordCardSent accrues one card at the account's configured price.
func (u *UsageUsecase) RecordCardSent(ctx context.Context, accountID uuid.UUID) error {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	year, month := u.period()
	return u.usageRepo.RecordCardSent(ctx, accountID, year, month, account.CardPriceCents)
}

// CurrentUsage returns this month's counter for the dashboard.
func (u *UsageUsecase) CurrentUsage(ctx context.Context, accountID uuid.UUID) (*entities.UsageCounter, error) {
	year, month := u.period()
	return u.usageRepo.GetOrCreate(ctx, accountID, year, month)
}

func (u *UsageUsecase) period() (int, int) {
	t := u.now().UTC()
	return t.Year(), int(t.Month())
}
