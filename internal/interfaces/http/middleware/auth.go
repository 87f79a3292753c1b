package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ekoink.backend/pkg/jwt"
)

const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "

	UserIDKey    = "userId"
	AccountIDKey = "accountId"
	UserEmailKey = "userEmail"
	UserRoleKey  = "userRole"
)

// AuthMiddleware guards dashboard routes with a JWT session token.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   true,
				"message": "Authorization header is required",
			})
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   true,
				"message": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   true,
				"message": msg,
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(AccountIDKey, claims.AccountID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// GetUserID gets the authenticated user ID from context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetAccountID gets the authenticated account ID from context. Both the
// JWT and API-key middlewares populate it.
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return accountID.(uuid.UUID), true
}

// GetUserRole gets the user role from context.
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(string), true
}

// RequireRole restricts a route to the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   true,
				"message": "User role not found",
			})
			return
		}
		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   true,
			"message": "Insufficient permissions",
		})
	}
}

// RequireOwner restricts a route to account owners.
func RequireOwner() gin.HandlerFunc {
	return RequireRole("OWNER")
}
