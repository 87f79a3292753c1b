package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"ekoink.backend/pkg/logger"
)

// LoggerMiddleware emits one structured access-log line per request after
// the handler chain finishes.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}
		logger.LogRequest(c.Request.Context(),
			c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
