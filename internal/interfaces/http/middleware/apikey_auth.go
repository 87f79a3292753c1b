package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/usecases"
	"ekoink.backend/pkg/logger"
)

const (
	ApiKeyIDKey     = "apiKeyId"
	ApiKeyScopesKey = "apiKeyScopes"
)

// APIKeyAuth guards the external API. It resolves the bearer secret to a
// key, enforces the route's scope, and meters the call. The last-used stamp
// and the call counter are best effort: their failure never fails the
// request.
//
// Error bodies are part of the public API contract:
//
//	401 {"error": "unauthorized", "message": ...}
//	403 {"error": "insufficient_scope", "message": ..., "available_scopes": [...]}
func APIKeyAuth(apiKeys *usecases.ApiKeyUsecase, usage *usecases.UsageUsecase, requiredScope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "API key required. Use: Authorization: Bearer sk_...")
			return
		}
		secret := strings.TrimPrefix(authHeader, BearerPrefix)

		apiKey, err := apiKeys.Validate(c.Request.Context(), secret)
		if err != nil {
			switch {
			case errors.Is(err, domainerrors.ErrKeyExpired):
				abortUnauthorized(c, "API key has expired")
			case errors.Is(err, domainerrors.ErrUnauthorized):
				abortUnauthorized(c, "Invalid API key")
			default:
				logger.Error(c.Request.Context(), "api key validation failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   true,
					"message": "internal server error",
				})
			}
			return
		}

		if !apiKey.HasScope(requiredScope) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":            "insufficient_scope",
				"message":          "API key does not grant " + requiredScope,
				"available_scopes": apiKey.Scopes,
			})
			return
		}

		c.Set(AccountIDKey, apiKey.AccountID)
		c.Set(ApiKeyIDKey, apiKey.ID)
		c.Set(ApiKeyScopesKey, apiKey.Scopes)
		if apiKey.UserID != nil {
			c.Set(UserIDKey, *apiKey.UserID)
		}

		if err := apiKeys.TouchLastUsed(c.Request.Context(), apiKey.ID); err != nil {
			logger.Warn(c.Request.Context(), "last-used stamp failed",
				zap.String("api_key_id", apiKey.ID.String()),
				zap.Error(err),
			)
		}
		if err := usage.MeterAPICall(c.Request.Context(), apiKey.AccountID); err != nil {
			logger.Warn(c.Request.Context(), "api call metering failed",
				zap.String("account_id", apiKey.AccountID.String()),
				zap.Error(err),
			)
		}

		c.Next()
	}
}

// CardQuota rejects card-send requests once the monthly allowance is used
// up. The body names the limit and current usage:
//
//	429 {"error": "quota_exceeded", "message": ..., "limit": N, "usage": N}
func CardQuota(usage *usecases.UsageUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := GetAccountID(c)
		if !ok {
			abortUnauthorized(c, "API key required")
			return
		}

		quota, err := usage.CheckCardQuota(c.Request.Context(), accountID)
		if err != nil {
			logger.Error(c.Request.Context(), "quota check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   true,
				"message": "internal server error",
			})
			return
		}
		if !quota.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "quota_exceeded",
				"message": "monthly card quota exceeded",
				"limit":   quota.Limit,
				"usage":   quota.Usage,
			})
			return
		}

		c.Next()
	}
}

// GetApiKeyID gets the authenticated key's ID from context.
func GetApiKeyID(c *gin.Context) (uuid.UUID, bool) {
	id, exists := c.Get(ApiKeyIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return id.(uuid.UUID), true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": message,
	})
}
