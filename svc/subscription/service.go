package subscription

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/ocladmin/pkg/cache"
	"github.com/dmitrymomot/ocladmin/pkg/ocl"
)

const (
	// DefaultCacheKey identifies the subscription resource in the cache.
	DefaultCacheKey = "ocl:subscription"
	// DefaultMaxViews bounds how many open views are tracked.
	DefaultMaxViews = 1024
	// DefaultViewTTL is how long an untouched view is kept.
	DefaultViewTTL = 30 * time.Minute
)

// Service opens and tracks subscription views.
// Views evicted from the registry are closed.
type Service struct {
	backend  Backend
	resource *cache.Resource[*ocl.Subscription]
	cacheKey string
	logger   *slog.Logger
	maxViews int
	viewTTL  time.Duration
	views    *cache.LRU[string, *View]
}

// Option configures a Service.
type Option func(*Service)

// WithCache shares fetched subscriptions between views.
func WithCache(r *cache.Resource[*ocl.Subscription]) Option {
	return func(s *Service) {
		s.resource = r
	}
}

// WithCacheKey overrides DefaultCacheKey.
func WithCacheKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.cacheKey = key
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxViews overrides DefaultMaxViews.
func WithMaxViews(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxViews = n
		}
	}
}

// WithViewTTL overrides DefaultViewTTL. Every lookup restarts the countdown.
// Zero keeps views until evicted by size.
func WithViewTTL(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.viewTTL = d
		}
	}
}

// NewService returns a Service backed by backend.
func NewService(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend:  backend,
		cacheKey: DefaultCacheKey,
		logger:   slog.Default(),
		maxViews: DefaultMaxViews,
		viewTTL:  DefaultViewTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.views = cache.NewLRU[string, *View](s.maxViews,
		cache.WithTTL[string, *View](s.viewTTL),
		cache.WithSlidingExpiry[string, *View](),
		cache.WithEvictCallback(func(_ string, v *View) { v.Close() }),
	)
	return s
}

// Open creates and registers a new view in the loading state.
func (s *Service) Open() *View {
	v := newView(uuid.NewString(), s)
	s.views.Put(v.id, v)
	return v
}

// View returns an open view by id.
func (s *Service) View(id string) (*View, error) {
	v, ok := s.views.Get(id)
	if !ok {
		return nil, ErrViewNotFound
	}
	return v, nil
}

// Release closes and forgets a view.
func (s *Service) Release(id string) {
	s.views.Remove(id)
}

// Close closes every open view.
func (s *Service) Close() {
	s.views.Clear()
}
