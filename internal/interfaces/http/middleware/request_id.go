package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware tags each request with an ID and echoes it back in the
// X-Request-ID response header. A caller-supplied ID is kept so requests can
// be correlated across services.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		// The logger picks the string key out of the request context.
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), "request_id", id)) //nolint:staticcheck

		c.Next()
	}
}
