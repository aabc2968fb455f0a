package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	redisclient "github.com/fantabuste/envelope-server-go/internal/redis"
)

func TestRateLimiter_Basic(t *testing.T) {
	ctx := context.Background()

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	// DB 15 keeps test keys away from anything real
	client, err := redisclient.NewClient(pingCtx, "redis://localhost:6379/15")
	if err != nil {
		t.Skip("Redis not available for testing")
	}
	defer client.Close()

	client.FlushDB(ctx)

	limiter := NewRateLimiter(client)

	t.Run("allows requests within limit", func(t *testing.T) {
		key := "test:join:203.0.113.1"
		limit := 3
		window := 10 * time.Second

		for i := 0; i < limit; i++ {
			allowed, _ := limiter.CheckLimit(ctx, key, limit, window)
			assert.True(t, allowed, "Request %d should be allowed", i+1)
		}

		allowed, resetAt := limiter.CheckLimit(ctx, key, limit, window)
		assert.False(t, allowed, "Request should be rate limited")
		assert.True(t, resetAt.After(time.Now()), "Reset time should be in future")
	})

	t.Run("sliding window behavior", func(t *testing.T) {
		key := "test:reveal:203.0.113.2"
		limit := 2
		window := 2 * time.Second

		allowed, _ := limiter.CheckLimit(ctx, key, limit, window)
		assert.True(t, allowed)
		allowed, _ = limiter.CheckLimit(ctx, key, limit, window)
		assert.True(t, allowed)

		allowed, _ = limiter.CheckLimit(ctx, key, limit, window)
		assert.False(t, allowed)

		time.Sleep(2100 * time.Millisecond)

		allowed, _ = limiter.CheckLimit(ctx, key, limit, window)
		assert.True(t, allowed)
	})

	t.Run("different keys are independent", func(t *testing.T) {
		limit := 1
		window := 10 * time.Second

		allowed, _ := limiter.CheckLimit(ctx, "test:create:a", limit, window)
		assert.True(t, allowed)

		allowed, _ = limiter.CheckLimit(ctx, "test:create:b", limit, window)
		assert.True(t, allowed)
	})
}

func TestRateLimiter_DeniesWhenRedisDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	limiter := NewRateLimiter(client)
	allowed, resetAt := limiter.CheckLimit(context.Background(), "test:down", 5, time.Minute)

	assert.False(t, allowed)
	assert.True(t, resetAt.After(time.Now()))
}
