package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request limiter backed by Redis. Counters live
// and expire entirely inside Redis, so limits hold across instances.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow increments the counter for (identity, scope) and reports whether the
// request fits inside the window. The first hit in a window sets the expiry.
func (l *Limiter) Allow(ctx context.Context, identityID, scope string, max int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, identityID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		l.client.Expire(ctx, key, window)
	}

	return count <= max, nil
}

// Remaining returns how many requests are left in the current window.
func (l *Limiter) Remaining(ctx context.Context, identityID, scope string, max int64) (int64, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, identityID)

	count, err := l.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return max, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read rate limit counter: %w", err)
	}

	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
