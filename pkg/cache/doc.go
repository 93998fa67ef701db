// Package cache provides the caching primitives used by the admin UI.
//
// LRU is a generic, thread-safe least-recently-used cache with optional TTL and
// an eviction callback, suitable for holding live objects that need cleanup when
// they leave the cache.
//
// Store abstracts a keyed value store. NewMemoryStore keeps values in an LRU;
// NewRedisStore keeps JSON-encoded values in Redis so several processes share them.
//
// Resource is a read-through cache keyed by resource identity. It replaces an
// ambient, framework-global data cache with an object that is built once and
// injected where it is needed:
//
//	store := cache.NewMemoryStore[cache.Entry[*ocl.Subscription]](16, time.Minute)
//	subs := cache.NewResource(store)
//
//	sub, err := subs.Load(ctx, "subscription", func(ctx context.Context) (*ocl.Subscription, error) {
//		return client.Get(ctx)
//	})
//
// Load revalidates against the source every time it is called, except when the
// cached value is younger than the dedupe interval. Concurrent loads of the same
// key are coalesced with singleflight. After a write use Mutate; after a delete
// use Invalidate.
package cache
