package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

func NewClient(ctx context.Context, redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{client}, nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}

// SessionChannel is the pub/sub channel carrying lobby events for a session code.
func SessionChannel(code string) string {
	return fmt.Sprintf("session-events:%s", code)
}

// RateLimitKey namespaces a limiter bucket.
func RateLimitKey(bucket, subject string) string {
	return fmt.Sprintf("ratelimit:%s:%s", bucket, subject)
}
