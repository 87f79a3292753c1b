package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/usecases"
)

// Success sends the standard success envelope.
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error maps a domain error to its HTTP status and the standard error
// envelope. Quota errors carry their numbers so API callers can back off
// intelligently.
func Error(c *gin.Context, err error) {
	var quotaErr *usecases.QuotaExceededError
	if errors.As(err, &quotaErr) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":   true,
			"message": quotaErr.Error(),
			"details": gin.H{
				"limit": quotaErr.Limit,
				"usage": quotaErr.Usage,
			},
		})
		return
	}

	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{
			"error":   true,
			"message": appErr.Message,
		})
		return
	}

	c.JSON(statusFor(err), gin.H{
		"error":   true,
		"message": messageFor(err),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerrors.ErrBadRequest), errors.Is(err, domainerrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domainerrors.ErrUnauthorized),
		errors.Is(err, domainerrors.ErrInvalidCredentials),
		errors.Is(err, domainerrors.ErrKeyExpired),
		errors.Is(err, domainerrors.ErrKeyRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, domainerrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainerrors.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domainerrors.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// messageFor hides internals behind a generic message for server faults.
func messageFor(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// BadRequest reports a malformed payload, quoting the binding error.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   true,
		"message": "invalid request body",
		"details": err.Error(),
	})
}
