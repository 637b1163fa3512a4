package httpx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hypolab/workspace/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	t.Run("socket peer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.ClientIP(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.ClientIP(req))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.ClientIP(req))
	})
}

func TestUserOrIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:9999"
	require.Equal(t, "ip:10.0.0.1", httpx.UserOrIP(req))

	req = req.WithContext(httpx.WithIdentity(req.Context(), httpx.Identity{Subject: "u1"}))
	require.Equal(t, "user:u1", httpx.UserOrIP(req))
}

func TestLimiterBurstThenDeny(t *testing.T) {
	rl := httpx.NewLimiter(httpx.Limit{Requests: 1, Window: time.Hour, Burst: 2})

	ok, _ := rl.Allow("a")
	require.True(t, ok)
	ok, _ = rl.Allow("a")
	require.True(t, ok)

	ok, wait := rl.Allow("a")
	require.False(t, ok)
	require.Greater(t, wait, time.Duration(0))

	// Buckets are per key
	ok, _ = rl.Allow("b")
	require.True(t, ok)
}

func TestLimiterZeroLimitIsUnlimited(t *testing.T) {
	rl := httpx.NewLimiter(httpx.Limit{})
	for range 50 {
		ok, _ := rl.Allow("k")
		require.True(t, ok)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := httpx.RateLimit(httpx.Limit{Requests: 1, Window: time.Hour, Burst: 1}, httpx.ClientIP)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusNoContent, call("198.51.100.1").Code)

	rec := call("198.51.100.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "rate_limited", body.Error)

	require.Equal(t, http.StatusNoContent, call("198.51.100.2").Code)
}

func TestRateLimitSkipsEmptyKey(t *testing.T) {
	h := httpx.RateLimit(httpx.Limit{Requests: 1, Window: time.Hour, Burst: 1},
		func(*http.Request) string { return "" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	for range 5 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
