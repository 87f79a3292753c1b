package usecases_test

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"ekoink.backend/internal/domain/entities"
	"ekoink.backend/internal/infrastructure/jobs"
	"ekoink.backend/internal/infrastructure/mail"
	"ekoink.backend/pkg/logger"
)

func init() {
	logger.Init("development")
}

// Mock ApiKeyRepository
type MockApiKeyRepository struct {
	mock.Mock
}

func (m *MockApiKeyRepository) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	args := m.Called(ctx, apiKey)
	return args.Error(0)
}

func (m *MockApiKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	args := m.Called(ctx, keyHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entities.ApiKey, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApiKeyRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementNotesApproved(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// Mock AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// Mock NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *entities.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *MockNoteRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Note, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *entities.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) ListApprovedByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Note, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

// Mock ToneProfileRepository
type MockToneProfileRepository struct {
	mock.Mock
}

func (m *MockToneProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.ToneProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ToneProfile), args.Error(1)
}

func (m *MockToneProfileRepository) Save(ctx context.Context, profile *entities.ToneProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// Mock UsageRepository
type MockUsageRepository struct {
	mock.Mock
}

func (m *MockUsageRepository) GetOrCreate(ctx context.Context, accountID uuid.UUID, year, month int) (*entities.UsageCounter, error) {
	args := m.Called(ctx, accountID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UsageCounter), args.Error(1)
}

func (m *MockUsageRepository) IncrementAPICalls(ctx context.Context, accountID uuid.UUID, year, month int) error {
	args := m.Called(ctx, accountID, year, month)
	return args.Error(0)
}

func (m *MockUsageRepository) RecordCardSent(ctx context.Context, accountID uuid.UUID, year, month int, amountCents int64) error {
	args := m.Called(ctx, accountID, year, month, amountCents)
	return args.Error(0)
}

// Mock DealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(ctx context.Context, deal *entities.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Deal), args.Error(1)
}

func (m *MockDealRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Deal, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Deal), args.Error(1)
}

// Mock CallRepository
type MockCallRepository struct {
	mock.Mock
}

func (m *MockCallRepository) Create(ctx context.Context, call *entities.Call) error {
	args := m.Called(ctx, call)
	return args.Error(0)
}

func (m *MockCallRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Call, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Call), args.Error(1)
}

func (m *MockCallRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Call, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Call), args.Error(1)
}

// Mock TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// Mock CardSender
type MockCardSender struct {
	mock.Mock
}

func (m *MockCardSender) CreateOrder(ctx context.Context, order mail.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

// fakeTaskQueue records submissions and runs them synchronously so tests
// can observe the side effects without a worker goroutine.
type fakeTaskQueue struct {
	submitted []string
	inline    bool
}

func (q *fakeTaskQueue) Submit(name string, timeout time.Duration, fn jobs.TaskFunc) bool {
	q.submitted = append(q.submitted, name)
	if q.inline {
		_ = fn(context.Background())
	}
	return true
}

func stringsContainsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
