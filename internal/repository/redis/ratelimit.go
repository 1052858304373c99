package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const callerLimitPrefix = "portal:ratelimit:"

// RateLimiter throttles authenticated portal callers with a fixed one-minute
// window counter held in Redis. Each caller gets the configured per-minute
// allowance plus a burst margin before requests are refused.
type RateLimiter struct {
	client    *Client
	perMinute int
	burst     int
}

// NewRateLimiter creates a caller rate limiter.
func NewRateLimiter(client *Client, perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client:    client,
		perMinute: perMinute,
		burst:     burst,
	}
}

// Allow counts the request against the caller's current window. It reports
// whether the request may proceed, how much allowance remains, and when the
// window resets.
func (r *RateLimiter) Allow(ctx context.Context, caller string) (bool, int, time.Time, error) {
	key := callerLimitPrefix + caller
	resetAt := time.Now().Truncate(time.Minute).Add(time.Minute)

	pipe := r.client.rdb.Pipeline()
	count := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, 0, time.Time{}, fmt.Errorf("failed to count request: %w", err)
	}

	limit := int64(r.perMinute + r.burst)
	remaining := limit - count.Val()
	if remaining < 0 {
		remaining = 0
	}

	return count.Val() <= limit, int(remaining), resetAt, nil
}
