package subscription

import (
	"context"
	"errors"

	"github.com/dmitrymomot/ocladmin/pkg/cache"
	"github.com/dmitrymomot/ocladmin/pkg/ocl"
	"github.com/dmitrymomot/ocladmin/pkg/secrets"
)

// CacheTokenPurpose is the secrets.Cipher purpose for tokens in a shared cache.
const CacheTokenPurpose = "ocl.subscription.cache-token"

// CacheStore is the store type behind the subscription cache.
type CacheStore = cache.Store[cache.Entry[*ocl.Subscription]]

type sealedStore struct {
	next   CacheStore
	cipher *secrets.Cipher
}

// NewSealedStore wraps next so subscription tokens are sealed with cipher
// before they are written and opened when read. Use it for stores that leave
// the process, such as cache.NewRedisStore.
func NewSealedStore(next CacheStore, cipher *secrets.Cipher) CacheStore {
	return &sealedStore{next: next, cipher: cipher}
}

func (s *sealedStore) Get(ctx context.Context, key string) (cache.Entry[*ocl.Subscription], bool, error) {
	entry, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok || entry.Value == nil {
		return entry, ok, err
	}
	sub := entry.Value.Clone()
	if sub.Token, err = s.cipher.Open(sub.Token); err != nil {
		return cache.Entry[*ocl.Subscription]{}, false, errors.Join(cache.ErrDecodeValue, err)
	}
	entry.Value = &sub
	return entry, true, nil
}

func (s *sealedStore) Set(ctx context.Context, key string, entry cache.Entry[*ocl.Subscription]) error {
	if entry.Value != nil {
		sub := entry.Value.Clone()
		var err error
		if sub.Token, err = s.cipher.Seal(sub.Token); err != nil {
			return errors.Join(cache.ErrEncodeValue, err)
		}
		entry.Value = &sub
	}
	return s.next.Set(ctx, key, entry)
}

func (s *sealedStore) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, key)
}
