package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
)

const idempotencyPrefix = "idempotency:"

// IdempotencyStore keeps recorded responses keyed by idempotency key.
type IdempotencyStore struct {
	rdb *redis.Client
}

func NewIdempotencyStore(rdb *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb}
}

// Get returns "" when nothing is stored under key.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, hashedKey(idempotencyPrefix, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", oops.Code("REDIS_QUERY_FAILED").With("operation", "idempotency get").Wrap(err)
	}
	return val, nil
}

// Set keeps the first value written for key.
func (s *IdempotencyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.rdb.SetNX(ctx, hashedKey(idempotencyPrefix, key), value, ttl).Err(); err != nil {
		return oops.Code("REDIS_QUERY_FAILED").With("operation", "idempotency set").Wrap(err)
	}
	return nil
}
