package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRateLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("allows requests under limit", func(t *testing.T) {
		limiter := NewMemoryRateLimiter()

		for i := 0; i < 5; i++ {
			allowed, resetAt := limiter.CheckLimit(ctx, "ip-1", 10, time.Minute)
			assert.True(t, allowed)
			assert.True(t, resetAt.After(time.Now()))
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		limiter := NewMemoryRateLimiter()

		for i := 0; i < 5; i++ {
			limiter.CheckLimit(ctx, "ip-2", 5, time.Minute)
		}

		allowed, _ := limiter.CheckLimit(ctx, "ip-2", 5, time.Minute)
		assert.False(t, allowed)
	})

	t.Run("tracks keys separately", func(t *testing.T) {
		limiter := NewMemoryRateLimiter()

		for i := 0; i < 5; i++ {
			limiter.CheckLimit(ctx, "ip-a", 5, time.Minute)
		}

		allowed, _ := limiter.CheckLimit(ctx, "ip-b", 5, time.Minute)
		assert.True(t, allowed)
	})

	t.Run("window slides", func(t *testing.T) {
		limiter := NewMemoryRateLimiter()
		window := 50 * time.Millisecond

		allowed, _ := limiter.CheckLimit(ctx, "ip-3", 1, window)
		assert.True(t, allowed)
		allowed, _ = limiter.CheckLimit(ctx, "ip-3", 1, window)
		assert.False(t, allowed)

		time.Sleep(2 * window)

		allowed, _ = limiter.CheckLimit(ctx, "ip-3", 1, window)
		assert.True(t, allowed)
	})
}

func TestIPRateLimitMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("returns 429 once the bucket is full", func(t *testing.T) {
		handler := NewIPRateLimitMiddleware(NewMemoryRateLimiter(), 2, time.Minute, "join").Handler(ok)

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/session/ABCDE/join", nil)
			req.RemoteAddr = "203.0.113.9:4000"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}

		// A new source port is still the same client.
		req := httptest.NewRequest(http.MethodPost, "/session/ABCDE/join", nil)
		req.RemoteAddr = "203.0.113.9:4001"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("buckets are per prefix", func(t *testing.T) {
		limiter := NewMemoryRateLimiter()
		create := NewIPRateLimitMiddleware(limiter, 1, time.Minute, "create").Handler(ok)
		reveal := NewIPRateLimitMiddleware(limiter, 1, time.Minute, "reveal").Handler(ok)

		for _, h := range []http.Handler{create, reveal} {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = "198.51.100.1:1234"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("zero limit disables the check", func(t *testing.T) {
		handler := NewIPRateLimitMiddleware(NewMemoryRateLimiter(), 0, time.Minute, "off").Handler(ok)
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
