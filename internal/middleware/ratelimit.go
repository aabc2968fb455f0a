package middleware

import (
	"context"
	"sync"
	"time"
)

const (
	maxEntries      = 10000
	cleanupInterval = time.Minute
	entryTTL        = 5 * time.Minute
)

// Limiter decides whether one more hit on key fits in the window.
// service.RateLimiter is the Redis-backed implementation.
type Limiter interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, resetAt time.Time)
}

type rateLimitEntry struct {
	timestamps []time.Time
	lastAccess time.Time
}

// MemoryRateLimiter is a per-process sliding-window limiter used when no
// Redis is configured.
type MemoryRateLimiter struct {
	mu          sync.Mutex
	store       map[string]*rateLimitEntry
	lastCleanup time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		store:       make(map[string]*rateLimitEntry),
		lastCleanup: time.Now(),
	}
}

func (rl *MemoryRateLimiter) cleanup(now time.Time) {
	if now.Sub(rl.lastCleanup) < cleanupInterval {
		return
	}
	rl.lastCleanup = now

	for key, entry := range rl.store {
		if now.Sub(entry.lastAccess) > entryTTL {
			delete(rl.store, key)
		}
	}

	if len(rl.store) > maxEntries {
		evict := len(rl.store) / 5
		for key := range rl.store {
			if evict == 0 {
				break
			}
			delete(rl.store, key)
			evict--
		}
	}
}

func (rl *MemoryRateLimiter) CheckLimit(
	_ context.Context,
	key string,
	limit int,
	window time.Duration,
) (allowed bool, resetAt time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.cleanup(now)

	windowStart := now.Add(-window)

	entry, exists := rl.store[key]
	if !exists {
		entry = &rateLimitEntry{}
		rl.store[key] = entry
	}
	entry.lastAccess = now

	filtered := entry.timestamps[:0]
	for _, ts := range entry.timestamps {
		if ts.After(windowStart) {
			filtered = append(filtered, ts)
		}
	}
	entry.timestamps = filtered

	if len(entry.timestamps) >= limit {
		return false, entry.timestamps[0].Add(window)
	}

	entry.timestamps = append(entry.timestamps, now)
	return true, entry.timestamps[0].Add(window)
}
