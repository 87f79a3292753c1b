package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// KeyPrefixLive is the prefix for production API keys
	KeyPrefixLive = "sk_live_"
	// KeyPrefixTest is the prefix for test-mode API keys
	KeyPrefixTest = "sk_test_"
	// ScopeAll grants every permission
	ScopeAll = "*"
)

// ApiKey represents an API key for external callers. The secret is never
// stored; only its SHA-256 hash and a display-safe prefix are kept.
type ApiKey struct {
	ID         uuid.UUID  `json:"id"`
	AccountID  uuid.UUID  `json:"accountId"`
	UserID     *uuid.UUID `json:"userId,omitempty"` // nil for account-scoped keys
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"keyPrefix"`
	KeyHash    string     `json:"-"`
	Scopes     []string   `json:"scopes"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ScopeResource returns the resource part of a "resource:action" scope token.
func ScopeResource(scope string) string {
	if i := strings.Index(scope, ":"); i >= 0 {
		return scope[:i]
	}
	return scope
}

// HasScope reports whether the key's scope set covers the required scope.
// A required scope is covered by an exact match, a "resource:*" wildcard for
// the same resource, or the global "*" wildcard.
func (k *ApiKey) HasScope(required string) bool {
	for _, s := range k.Scopes {
		if s == ScopeAll || s == required {
			return true
		}
		if res, ok := strings.CutSuffix(s, ":*"); ok && res == ScopeResource(required) {
			return true
		}
	}
	return false
}

// Revoked reports whether the key has been soft-deleted.
func (k *ApiKey) Revoked() bool {
	return k.RevokedAt != nil
}

// Expired reports whether the key's expiry has passed.
func (k *ApiKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && now.After(*k.ExpiresAt)
}

// CreateApiKeyInput is the key-creation payload
type CreateApiKeyInput struct {
	Name      string     `json:"name" binding:"required"`
	Scopes    []string   `json:"scopes"`
	ExpiresAt *time.Time `json:"expiresAt"`
	TestMode  bool       `json:"testMode"`
}

// CreateApiKeyResponse carries the plaintext secret, shown exactly once
type CreateApiKeyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ApiKey    string    `json:"apiKey"`
	KeyPrefix string    `json:"keyPrefix"`
	Scopes    []string  `json:"scopes"`
	CreatedAt time.Time `json:"createdAt"`
}
