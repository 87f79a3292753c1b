package usecases

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/domain/repositories"
)

const keySecretBytes = 24

// ApiKeyUsecase creates, validates and revokes API keys.
type ApiKeyUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
}

func NewApiKeyUsecase(apiKeyRepo repositories.ApiKeyRepository) *ApiKeyUsecase {
	return &ApiKeyUsecase{apiKeyRepo: apiKeyRepo}
}

// HashKey returns the SHA-256 hex digest of a presented secret. Keys are
// looked up by this hash; the plaintext is never stored.
func HashKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Create mints a new key. The plaintext secret appears only in the response
// and cannot be recovered afterwards.
func (u *ApiKeyUsecase) Create(ctx context.Context, accountID uuid.UUID, userID *uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	prefix := entities.KeyPrefixLive
	if input.TestMode {
		prefix = entities.KeyPrefixTest
	}

	raw := make([]byte, keySecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate key secret: %w", err)
	}
	secret := prefix + hex.EncodeToString(raw)

	scopes := input.Scopes
	if len(scopes) == 0 {
		scopes = []string{entities.ScopeAll}
	}

	apiKey := &entities.ApiKey{
		ID:        uuid.New(),
		AccountID: accountID,
		UserID:    userID,
		Name:      input.Name,
		KeyPrefix: secret[:len(prefix)+4],
		KeyHash:   HashKey(secret),
		Scopes:    scopes,
		ExpiresAt: input.ExpiresAt,
	}
	if err := u.apiKeyRepo.Create(ctx, apiKey); err != nil {
		return nil, err
	}

	return &entities.CreateApiKeyResponse{
		ID:        apiKey.ID,
		Name:      apiKey.Name,
		ApiKey:    secret,
		KeyPrefix: apiKey.KeyPrefix,
		Scopes:    apiKey.Scopes,
		CreatedAt: apiKey.CreatedAt,
	}, nil
}

// Validate resolves a presented secret to its key record. Unknown and
// revoked secrets are indistinguishable to the caller; expiry is reported
// distinctly so the middleware can say why the key stopped working.
func (u *ApiKeyUsecase) Validate(ctx context.Context, secret string) (*entities.ApiKey, error) {
	apiKey, err := u.apiKeyRepo.FindByKeyHash(ctx, HashKey(secret))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	if apiKey.Expired(time.Now()) {
		return nil, domainerrors.ErrKeyExpired
	}
	return apiKey, nil
}

// TouchLastUsed stamps the key's last use. Best effort; callers ignore the
// error beyond logging.
func (u *ApiKeyUsecase) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	return u.apiKeyRepo.TouchLastUsed(ctx, id)
}

// List returns all keys for an account, revoked ones included.
func (u *ApiKeyUsecase) List(ctx context.Context, accountID uuid.UUID) ([]*entities.ApiKey, error) {
	return u.apiKeyRepo.FindByAccountID(ctx, accountID)
}

// Revoke soft-deletes a key. The key must belong to the caller's account.
func (u *ApiKeyUsecase) Revoke(ctx context.Context, accountID, keyID uuid.UUID) error {
	apiKey, err := u.apiKeyRepo.FindByID(ctx, keyID)
	if err != nil {
		return err
	}
	if apiKey.AccountID != accountID {
		return domainerrors.ErrNotFound
	}
	return u.apiKeyRepo.Revoke(ctx, keyID)
}
