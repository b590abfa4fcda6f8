package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnknownClient is the identifier used when the caller's IP cannot be
// determined; all such requests share one bucket.
const UnknownClient = "unknown"

// Decision is the limiter's verdict for one request
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// RateLimiter enforces a per-identifier request budget
type RateLimiter interface {
	Enforce(ctx context.Context, identifier string) (Decision, error)
}

// redisRateLimiter is a fixed-window counter per identifier: INCR the
// window key, set the TTL on first hit, deny past the limit.
type redisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a Redis-backed fixed-window limiter
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) RateLimiter {
	return &redisRateLimiter{client: client, limit: limit, window: window}
}

func (l *redisRateLimiter) key(identifier string) string {
	return fmt.Sprintf("ratelimit:%s", identifier)
}

func (l *redisRateLimiter) Enforce(ctx context.Context, identifier string) (Decision, error) {
	if identifier == "" {
		identifier = UnknownClient
	}
	key := l.key(identifier)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return Decision{}, err
		}
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= int64(l.limit),
		Remaining: remaining,
		ResetIn:   ttl,
	}, nil
}
