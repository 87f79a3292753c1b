package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"ekoink.backend/internal/config"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/pkg/logger"
)

func init() {
	logger.Init("development")
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.AIConfig{
		APIKey:  "sk-test",
		BaseURL: baseURL,
		Model:   "gpt-4o-mini",
		Timeout: 2 * time.Second,
	})
}

func completionBody(text string) chatResponse {
	var resp chatResponse
	resp.Choices = []struct {
		Message chatMessage `json:"message"`
	}{{Message: chatMessage{Role: "assistant", Content: text}}}
	return resp
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		require.Equal(t, "system", req.Messages[0].Role)

		json.NewEncoder(w).Encode(completionBody("Dear Sam, thank you."))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Complete(context.Background(), "You write notes.", "Write one.")
	require.NoError(t, err)
	require.Equal(t, "Dear Sam, thank you.", text)
}

func TestComplete_RetriesOnRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(completionBody("second try"))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	require.Equal(t, "second try", text)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestComplete_NoRetryOnBadRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), "sys", "user")
	require.ErrorIs(t, err, domainerrors.ErrUpstream)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
