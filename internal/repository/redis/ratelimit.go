package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimitResult describes the state of a caller's current window
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiter is a fixed one-minute window limiter keyed by caller
type RateLimiter struct {
	client *Client
	limit  int
}

// NewRateLimiter creates a limiter allowing requestsPerMinute plus burst per window
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  requestsPerMinute + burst,
	}
}

// Allow counts one request for key in the current window
func (r *RateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	now := time.Now()
	windowStart := now.Truncate(time.Minute)
	fullKey := fmt.Sprintf("%s%s:%d", rateLimitPrefix, key, windowStart.Unix())

	pipe := r.client.rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, time.Minute)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return RateLimitResult{}, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	count := int(incrCmd.Val())
	remaining := r.limit - count
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitResult{
		Allowed:   count <= r.limit,
		Limit:     r.limit,
		Remaining: remaining,
		ResetAt:   windowStart.Add(time.Minute),
	}, nil
}
