package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request counter backed by Redis.
// Key format: ratelimit:<scope>:<key>
type RateLimiter struct {
	client *redis.Client
	scope  string
	limit  int64
	window time.Duration
}

// NewRateLimiter allows up to limit hits per key within each window.
func NewRateLimiter(client *redis.Client, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, scope: scope, limit: int64(limit), window: window}
}

// Allow records one hit for key and reports whether it is within the limit,
// along with the number of hits left in the current window.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	k := l.key(key)

	// SET NX EX and INCR run in one MULTI, so a counter never exists without
	// its window TTL.
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, l.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit %s: %w", l.scope, err)
	}

	n := incr.Val()
	if n > l.limit {
		return false, 0, nil
	}
	return true, int(l.limit - n), nil
}

func (l *RateLimiter) key(key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.scope, key)
}
