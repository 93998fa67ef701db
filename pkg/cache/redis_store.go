package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore[V any] struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a Store that keeps JSON-encoded values in Redis under
// prefix+key. Values must round-trip through encoding/json.
// ttl of zero stores keys without expiry.
func NewRedisStore[V any](client redis.UniversalClient, prefix string, ttl time.Duration) Store[V] {
	return &redisStore[V]{client: client, prefix: prefix, ttl: ttl}
}

func (s *redisStore[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V

	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, errors.Join(ErrStoreUnavailable, err)
	}

	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, false, errors.Join(ErrDecodeValue, err)
	}
	return v, true, nil
}

func (s *redisStore[V]) Set(ctx context.Context, key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncodeValue, err)
	}
	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *redisStore[V]) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
