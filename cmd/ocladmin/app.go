package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	oclmodule "github.com/dmitrymomot/ocladmin/modules/ocl"
	"github.com/dmitrymomot/ocladmin/modules/oclapi"
	"github.com/dmitrymomot/ocladmin/pkg/cache"
	"github.com/dmitrymomot/ocladmin/pkg/httpserver"
	"github.com/dmitrymomot/ocladmin/pkg/i18n"
	"github.com/dmitrymomot/ocladmin/pkg/logger"
	"github.com/dmitrymomot/ocladmin/pkg/ocl"
	"github.com/dmitrymomot/ocladmin/pkg/pg"
	"github.com/dmitrymomot/ocladmin/pkg/redis"
	"github.com/dmitrymomot/ocladmin/pkg/requestid"
	"github.com/dmitrymomot/ocladmin/pkg/secrets"
	"github.com/dmitrymomot/ocladmin/svc/subscription"
)

func newLogger(cfg logger.Config) *slog.Logger {
	return logger.NewFromConfig(cfg, logger.WithContextExtractors(requestid.LoggerExtractor()))
}

// deps collects what has to be released on shutdown and probed for readiness.
type deps struct {
	cleanups []httpserver.Option
	checks   []httpserver.Check
}

func (d *deps) onShutdown(name string, fn func(context.Context) error) {
	d.cleanups = append(d.cleanups, httpserver.WithCleanup(name, fn))
}

// release runs the cleanups registered so far when startup fails before the
// server could run them.
func (d *deps) release(ctx context.Context) {
	srv := httpserver.New(d.cleanups...)
	_ = srv.Shutdown(ctx)
}

func run(ctx context.Context, cfg Config, log *slog.Logger) (err error) {
	d := &deps{}
	defer func() {
		if err != nil && !errors.Is(err, httpserver.ErrShutdown) {
			d.release(ctx)
		}
	}()

	tr, err := oclmodule.NewTranslator(ctx, i18n.WithLogger(log))
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(
		i18n.WithSupportedLanguages(tr.SupportedLanguages()...),
	)))

	if cfg.App.EmbeddedAPI {
		store, err := newAPIStore(ctx, cfg, log, d)
		if err != nil {
			return err
		}
		api := oclapi.NewAPI(store, oclapi.WithLogger(log))
		r.Mount(cfg.App.RESTRoot+oclapi.DefaultResourcePath, api.Handle())
		log.InfoContext(ctx, "embedded subscription api enabled", slog.String("storage", cfg.App.APIStorage))
	}

	cacheStore, err := newCacheStore(ctx, cfg, log, d)
	if err != nil {
		return err
	}
	resource := cache.NewResource(cacheStore,
		cache.WithDedupeInterval[*ocl.Subscription](cfg.App.DedupeInterval),
		cache.WithResourceLogger[*ocl.Subscription](log),
	)

	client := ocl.NewClient(cfg.Client, ocl.WithLogger(log))
	svc := subscription.NewService(client,
		subscription.WithCache(resource),
		subscription.WithLogger(log),
		subscription.WithMaxViews(cfg.App.MaxViews),
		subscription.WithViewTTL(cfg.App.ViewTTL),
	)
	d.onShutdown("subscription views", func(context.Context) error {
		svc.Close()
		return nil
	})

	r.Mount(cfg.App.BasePath, oclmodule.Router(oclmodule.RouterOptions{
		Subscription: oclmodule.NewSubscriptionHandler(svc, tr, cfg.App.BasePath, oclmodule.WithLogger(log)),
	}))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cfg.App.BasePath+"/subscription", http.StatusFound)
	})
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, d.checks...))

	srv := httpserver.NewFromConfig(cfg.HTTP, append(d.cleanups, httpserver.WithLogger(log))...)
	return srv.Run(ctx, r)
}

// newCipher derives a cipher for purpose from OCL_SECRETS_KEY.
func newCipher(cfg Config, purpose string) (*secrets.Cipher, error) {
	key, err := secrets.ParseKey(cfg.App.SecretsKey)
	if err != nil {
		return nil, err
	}
	return secrets.NewCipher(key, purpose)
}

// newCacheStore keeps tokens sealed whenever the cache leaves the process.
func newCacheStore(ctx context.Context, cfg Config, log *slog.Logger, d *deps) (subscription.CacheStore, error) {
	if cfg.App.CacheBackend != BackendRedis {
		return cache.NewMemoryStore[cache.Entry[*ocl.Subscription]](cfg.App.CacheCapacity, cfg.App.CacheTTL), nil
	}

	cipher, err := newCipher(cfg, subscription.CacheTokenPurpose)
	if err != nil {
		return nil, err
	}
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	d.onShutdown("redis", func(context.Context) error { return client.Close() })
	d.checks = append(d.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	log.InfoContext(ctx, "subscription cache uses redis")

	store := cache.NewRedisStore[cache.Entry[*ocl.Subscription]](client, cfg.Redis.KeyPrefix, cfg.App.CacheTTL)
	return subscription.NewSealedStore(store, cipher), nil
}

func newAPIStore(ctx context.Context, cfg Config, log *slog.Logger, d *deps) (oclapi.Store, error) {
	if cfg.App.APIStorage != BackendPostgres {
		return oclapi.NewMemoryStore(), nil
	}

	cipher, err := newCipher(cfg, oclapi.TokenPurpose)
	if err != nil {
		return nil, err
	}

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return nil, err
	}
	d.onShutdown("postgres", func(context.Context) error {
		pool.Close()
		return nil
	})
	d.checks = append(d.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})

	if err := pg.Migrate(ctx, pool, oclapi.Migrations, oclapi.MigrationsDir, cfg.PG, log); err != nil {
		return nil, err
	}
	return oclapi.NewPostgresStore(pool, cipher), nil
}
