package oclapi

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/ocladmin/pkg/ocl"
)

// Store persists the singleton subscription.
type Store interface {
	// Current returns the subscription or ErrNotFound.
	Current(ctx context.Context) (ocl.Subscription, error)
	// Put stores sub as the singleton in one step: it is created under a new
	// uuid when none exists, otherwise the existing one is replaced and keeps
	// its uuid. created reports which happened.
	Put(ctx context.Context, sub ocl.Subscription) (saved ocl.Subscription, created bool, err error)
	// Update replaces the subscription with sub.UUID or returns ErrNotFound.
	Update(ctx context.Context, sub ocl.Subscription) (ocl.Subscription, error)
	// Delete removes the subscription with the given uuid or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

type memoryStore struct {
	mu  sync.RWMutex
	sub *ocl.Subscription
}

// NewMemoryStore returns a Store that lives for the lifetime of the process.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Current(context.Context) (ocl.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sub == nil {
		return ocl.Subscription{}, ErrNotFound
	}
	return s.sub.Clone(), nil
}

func (s *memoryStore) Put(_ context.Context, sub ocl.Subscription) (ocl.Subscription, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub = sub.Clone()
	created := s.sub == nil
	if created {
		sub.UUID = uuid.NewString()
	} else {
		sub.UUID = s.sub.UUID
	}
	s.sub = &sub
	return sub.Clone(), created, nil
}

func (s *memoryStore) Update(_ context.Context, sub ocl.Subscription) (ocl.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub == nil || s.sub.UUID != sub.UUID {
		return ocl.Subscription{}, ErrNotFound
	}
	sub = sub.Clone()
	s.sub = &sub
	return sub.Clone(), nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub == nil || s.sub.UUID != id {
		return ErrNotFound
	}
	s.sub = nil
	return nil
}
