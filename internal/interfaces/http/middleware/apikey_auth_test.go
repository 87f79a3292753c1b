package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/usecases"
	"ekoink.backend/pkg/logger"
)

func init() {
	logger.Init("development")
}

// fakeApiKeyRepo keeps keys in memory, keyed by hash, mirroring the real
// repository's revocation semantics.
type fakeApiKeyRepo struct {
	byHash     map[string]*entities.ApiKey
	lastUsedOf []uuid.UUID
}

func newFakeApiKeyRepo(keys ...*entities.ApiKey) *fakeApiKeyRepo {
	r := &fakeApiKeyRepo{byHash: make(map[string]*entities.ApiKey)}
	for _, k := range keys {
		r.byHash[k.KeyHash] = k
	}
	return r
}

func (r *fakeApiKeyRepo) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	r.byHash[apiKey.KeyHash] = apiKey
	return nil
}

func (r *fakeApiKeyRepo) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	k, ok := r.byHash[keyHash]
	if !ok || k.Revoked() {
		return nil, domainerrors.ErrNotFound
	}
	return k, nil
}

func (r *fakeApiKeyRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*entities.ApiKey, error) {
	return nil, nil
}

func (r *fakeApiKeyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	for _, k := range r.byHash {
		if k.ID == id {
			return k, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *fakeApiKeyRepo) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	r.lastUsedOf = append(r.lastUsedOf, id)
	return nil
}

func (r *fakeApiKeyRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	for _, k := range r.byHash {
		if k.ID == id {
			k.RevokedAt = &now
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

type fakeUsageRepo struct {
	apiCalls  int
	cardsSent int
}

func (r *fakeUsageRepo) GetOrCreate(ctx context.Context, accountID uuid.UUID, year, month int) (*entities.UsageCounter, error) {
	return &entities.UsageCounter{
		AccountID: accountID,
		Year:      year,
		Month:     month,
		CardsSent: r.cardsSent,
		APICalls:  r.apiCalls,
	}, nil
}

func (r *fakeUsageRepo) IncrementAPICalls(ctx context.Context, accountID uuid.UUID, year, month int) error {
	r.apiCalls++
	return nil
}

func (r *fakeUsageRepo) RecordCardSent(ctx context.Context, accountID uuid.UUID, year, month int, amountCents int64) error {
	r.cardsSent++
	return nil
}

type fakeAccountRepo struct {
	account *entities.Account
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *entities.Account) error { return nil }

func (r *fakeAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	if r.account == nil {
		return nil, domainerrors.ErrNotFound
	}
	return r.account, nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, account *entities.Account) error { return nil }

func liveKey(accountID uuid.UUID, secret string, scopes ...string) *entities.ApiKey {
	return &entities.ApiKey{
		ID:        uuid.New(),
		AccountID: accountID,
		KeyHash:   usecases.HashKey(secret),
		Scopes:    scopes,
	}
}

func apiKeyTestRouter(keyRepo *fakeApiKeyRepo, usageRepo *fakeUsageRepo, scope string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apiKeys := usecases.NewApiKeyUsecase(keyRepo)
	usage := usecases.NewUsageUsecase(usageRepo, &fakeAccountRepo{})

	r := gin.New()
	r.GET("/v1/ping", APIKeyAuth(apiKeys, usage, scope), func(c *gin.Context) {
		accountID, _ := GetAccountID(c)
		c.JSON(http.StatusOK, gin.H{"accountId": accountID})
	})
	return r
}

func doRequest(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIKeyAuth_MissingHeader(t *testing.T) {
	r := apiKeyTestRouter(newFakeApiKeyRepo(), &fakeUsageRepo{}, "notes:read")
	w := doRequest(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["error"])
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	r := apiKeyTestRouter(newFakeApiKeyRepo(), &fakeUsageRepo{}, "notes:read")
	w := doRequest(r, "Bearer sk_live_does_not_exist")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestAPIKeyAuth_RevokedKeyIndistinguishableFromUnknown(t *testing.T) {
	accountID := uuid.New()
	secret := "sk_live_revoked"
	key := liveKey(accountID, secret, "*")
	repo := newFakeApiKeyRepo(key)
	require.NoError(t, repo.Revoke(context.Background(), key.ID))

	r := apiKeyTestRouter(repo, &fakeUsageRepo{}, "notes:read")
	w := doRequest(r, "Bearer "+secret)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
	assert.NotContains(t, w.Body.String(), "revoked")
}

func TestAPIKeyAuth_ExpiredKeyDistinctMessage(t *testing.T) {
	accountID := uuid.New()
	secret := "sk_live_expired"
	key := liveKey(accountID, secret, "*")
	past := time.Now().Add(-time.Minute)
	key.ExpiresAt = &past

	r := apiKeyTestRouter(newFakeApiKeyRepo(key), &fakeUsageRepo{}, "notes:read")
	w := doRequest(r, "Bearer "+secret)
	require.Equal(t, http.StatusUnauthorized, w.Code, "expiry is still a 401")
	assert.Contains(t, w.Body.String(), "API key has expired")
}

func TestAPIKeyAuth_InsufficientScope(t *testing.T) {
	accountID := uuid.New()
	secret := "sk_live_readonly"
	key := liveKey(accountID, secret, "notes:read")

	r := apiKeyTestRouter(newFakeApiKeyRepo(key), &fakeUsageRepo{}, "notes:send")
	w := doRequest(r, "Bearer "+secret)
	require.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Error           string   `json:"error"`
		Message         string   `json:"message"`
		AvailableScopes []string `json:"available_scopes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "insufficient_scope", body.Error)
	assert.Equal(t, []string{"notes:read"}, body.AvailableScopes)
}

func TestAPIKeyAuth_SuccessMetersAndStamps(t *testing.T) {
	accountID := uuid.New()
	secret := "sk_live_good"
	key := liveKey(accountID, secret, "notes:*")
	keyRepo := newFakeApiKeyRepo(key)
	usageRepo := &fakeUsageRepo{}

	r := apiKeyTestRouter(keyRepo, usageRepo, "notes:read")
	w := doRequest(r, "Bearer "+secret)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), accountID.String())

	assert.Equal(t, []uuid.UUID{key.ID}, keyRepo.lastUsedOf)
	assert.Equal(t, 1, usageRepo.apiCalls)
}

func TestCardQuota_ExceededBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accountID := uuid.New()
	usageRepo := &fakeUsageRepo{cardsSent: 100}
	usage := usecases.NewUsageUsecase(usageRepo, &fakeAccountRepo{account: &entities.Account{
		ID:              accountID,
		BillingType:     entities.BillingTypeUsage,
		APIMonthlyLimit: 100,
	}})

	r := gin.New()
	r.POST("/v1/notes/:id/send",
		func(c *gin.Context) { c.Set(AccountIDKey, accountID); c.Next() },
		CardQuota(usage),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodPost, "/v1/notes/abc/send", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Limit   int    `json:"limit"`
		Usage   int    `json:"usage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "quota_exceeded", body.Error)
	assert.Equal(t, 100, body.Limit)
	assert.Equal(t, 100, body.Usage)
}

func TestCardQuota_UnderLimitPasses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accountID := uuid.New()
	usageRepo := &fakeUsageRepo{cardsSent: 99}
	usage := usecases.NewUsageUsecase(usageRepo, &fakeAccountRepo{account: &entities.Account{
		ID:              accountID,
		BillingType:     entities.BillingTypeUsage,
		APIMonthlyLimit: 100,
	}})

	r := gin.New()
	r.POST("/send",
		func(c *gin.Context) { c.Set(AccountIDKey, accountID); c.Next() },
		CardQuota(usage),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodPost, "/send", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
