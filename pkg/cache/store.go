package cache

import (
	"context"
	"time"
)

// Store is a keyed value store backing a Resource.
// Get reports a miss with ok=false and a nil error.
type Store[V any] interface {
	Get(ctx context.Context, key string) (value V, ok bool, err error)
	Set(ctx context.Context, key string, value V) error
	Delete(ctx context.Context, key string) error
}

type memoryStore[V any] struct {
	lru *LRU[string, V]
}

// DefaultMemoryCapacity bounds the in-memory store when no capacity is given.
const DefaultMemoryCapacity = 1024

// NewMemoryStore returns a process-local Store backed by an LRU.
// ttl of zero keeps entries until they are evicted by capacity.
func NewMemoryStore[V any](capacity int, ttl time.Duration) Store[V] {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &memoryStore[V]{lru: NewLRU[string, V](capacity, WithTTL[string, V](ttl))}
}

func (s *memoryStore[V]) Get(_ context.Context, key string) (V, bool, error) {
	v, ok := s.lru.Get(key)
	return v, ok, nil
}

func (s *memoryStore[V]) Set(_ context.Context, key string, value V) error {
	s.lru.Put(key, value)
	return nil
}

func (s *memoryStore[V]) Delete(_ context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}
