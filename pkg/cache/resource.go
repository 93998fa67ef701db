package cache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/ocladmin/pkg/logger"
)

// Entry is what a Resource keeps in its Store.
type Entry[V any] struct {
	Value     V         `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Fetcher loads the authoritative value of a resource.
type Fetcher[V any] func(ctx context.Context) (V, error)

// DefaultDedupeInterval is how long a fetched value satisfies further loads
// without going back to the source.
const DefaultDedupeInterval = 2 * time.Second

// Resource is a read-through cache keyed by resource identity.
// Every Load revalidates against the source unless the cached value was fetched
// within the dedupe interval; concurrent loads of one key share a single fetch.
type Resource[V any] struct {
	store  Store[Entry[V]]
	group  singleflight.Group
	dedupe time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// ResourceOption configures a Resource.
type ResourceOption[V any] func(*Resource[V])

// WithDedupeInterval overrides DefaultDedupeInterval. Zero revalidates on every Load.
func WithDedupeInterval[V any](d time.Duration) ResourceOption[V] {
	return func(r *Resource[V]) {
		if d >= 0 {
			r.dedupe = d
		}
	}
}

// WithResourceLogger sets the logger used for store failures.
func WithResourceLogger[V any](l *slog.Logger) ResourceOption[V] {
	return func(r *Resource[V]) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResource returns a Resource over store.
func NewResource[V any](store Store[Entry[V]], opts ...ResourceOption[V]) *Resource[V] {
	r := &Resource[V]{
		store:  store,
		dedupe: DefaultDedupeInterval,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the value for key, fetching it when the cached copy is missing or
// older than the dedupe interval. Fetch errors are returned as is and leave the
// cache untouched. Store failures are logged and never fail the load.
func (r *Resource[V]) Load(ctx context.Context, key string, fetch Fetcher[V]) (V, error) {
	if entry, ok := r.peek(ctx, key); ok && r.now().Sub(entry.FetchedAt) < r.dedupe {
		return entry.Value, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		value, err := fetch(ctx)
		if err != nil {
			return value, err
		}
		r.put(ctx, key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	value, _ := v.(V)
	return value, nil
}

// Peek returns the cached value without revalidating.
func (r *Resource[V]) Peek(ctx context.Context, key string) (V, bool) {
	entry, ok := r.peek(ctx, key)
	return entry.Value, ok
}

// Mutate replaces the cached value, as after a successful write.
func (r *Resource[V]) Mutate(ctx context.Context, key string, value V) {
	r.put(ctx, key, value)
}

// Invalidate drops the cached value so the next Load goes to the source.
func (r *Resource[V]) Invalidate(ctx context.Context, key string) {
	if err := r.store.Delete(ctx, key); err != nil {
		r.logger.WarnContext(ctx, "cache invalidate failed",
			logger.Component("cache"),
			logger.CacheKey(key),
			logger.Error(err),
		)
	}
}

func (r *Resource[V]) peek(ctx context.Context, key string) (Entry[V], bool) {
	entry, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.logger.WarnContext(ctx, "cache read failed",
			logger.Component("cache"),
			logger.CacheKey(key),
			logger.Error(err),
		)
		return Entry[V]{}, false
	}
	return entry, ok
}

func (r *Resource[V]) put(ctx context.Context, key string, value V) {
	if err := r.store.Set(ctx, key, Entry[V]{Value: value, FetchedAt: r.now()}); err != nil {
		r.logger.WarnContext(ctx, "cache write failed",
			logger.Component("cache"),
			logger.CacheKey(key),
			logger.Error(err),
		)
	}
}
