package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	redispkg "ekoink.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

func idempotencyRouter(accountID uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(AccountIDKey, accountID)
		c.Next()
	})
	r.Use(IdempotencyMiddleware())
	r.POST("/send", handler)
	return r
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdempotencyMiddleware())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	startMiniRedis(t)
	accountID := uuid.New()

	var handlerCalls int
	r := idempotencyRouter(accountID, func(c *gin.Context) {
		handlerCalls++
		c.JSON(http.StatusOK, gin.H{"orderId": "ord_1"})
	})

	first := httptest.NewRequest(http.MethodPost, "/send", nil)
	first.Header.Set(IdempotencyHeader, "retry-1")
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, first)
	require.Equal(t, http.StatusOK, w1.Code)

	second := httptest.NewRequest(http.MethodPost, "/send", nil)
	second.Header.Set(IdempotencyHeader, "retry-1")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, second)

	require.Equal(t, http.StatusOK, w2.Code)
	require.Equal(t, "true", w2.Header().Get("X-Idempotency-Hit"))
	require.JSONEq(t, w1.Body.String(), w2.Body.String())
	require.Equal(t, 1, handlerCalls, "the card is only ordered once")
}

func TestIdempotencyMiddleware_InProgressConflict(t *testing.T) {
	srv := startMiniRedis(t)
	accountID := uuid.New()
	srv.Set(fmt.Sprintf("idempotency:%s:key-1", accountID), "processing")

	r := idempotencyRouter(accountID, func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/send", nil)
	req.Header.Set(IdempotencyHeader, "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestIdempotencyMiddleware_FailureReleasesKey(t *testing.T) {
	startMiniRedis(t)
	accountID := uuid.New()

	var handlerCalls int
	r := idempotencyRouter(accountID, func(c *gin.Context) {
		handlerCalls++
		if handlerCalls == 1 {
			c.JSON(http.StatusBadGateway, gin.H{"error": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderId": "ord_2"})
	})

	for i, wantStatus := range []int{http.StatusBadGateway, http.StatusOK} {
		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set(IdempotencyHeader, "retry-2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, wantStatus, w.Code, "attempt %d", i+1)
	}
	require.Equal(t, 2, handlerCalls, "a failed attempt may be retried")
}
