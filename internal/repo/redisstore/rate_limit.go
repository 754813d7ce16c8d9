package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter counts hits per key in fixed windows.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// Allow records a hit for key and reports whether it is within limit for
// the current window. The window TTL is created with SET NX in the same
// transaction as the INCR, so a counter never exists without an expiry.
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	k := hashedKey(rateLimitPrefix, key)

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return false, oops.Code("REDIS_QUERY_FAILED").With("operation", "rate limit incr").Wrap(err)
	}
	return incr.Val() <= int64(limit), nil
}
