package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/ocladmin/pkg/config"
	"github.com/dmitrymomot/ocladmin/pkg/httpserver"
	"github.com/dmitrymomot/ocladmin/pkg/logger"
	"github.com/dmitrymomot/ocladmin/pkg/ocl"
	"github.com/dmitrymomot/ocladmin/pkg/pg"
	"github.com/dmitrymomot/ocladmin/pkg/redis"
)

// Cache and storage backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// AppConfig holds the settings owned by the binary itself.
type AppConfig struct {
	BasePath string `env:"OCL_BASE_PATH" envDefault:"/ocl"` // BasePath is where the admin pages are mounted.

	CacheBackend   string        `env:"OCL_CACHE_BACKEND" envDefault:"memory"` // CacheBackend is memory or redis.
	CacheTTL       time.Duration `env:"OCL_CACHE_TTL" envDefault:"5m"`         // CacheTTL is how long a fetched subscription stays cached.
	CacheCapacity  int           `env:"OCL_CACHE_CAPACITY" envDefault:"64"`    // CacheCapacity bounds the memory cache.
	DedupeInterval time.Duration `env:"OCL_CACHE_DEDUPE" envDefault:"2s"`      // DedupeInterval lets concurrent page loads share one fetch.
	MaxViews       int           `env:"OCL_MAX_VIEWS" envDefault:"1024"`       // MaxViews bounds open subscription views.
	ViewTTL        time.Duration `env:"OCL_VIEW_TTL" envDefault:"30m"`         // ViewTTL expires views of abandoned pages.

	EmbeddedAPI bool   `env:"OCL_EMBEDDED_API" envDefault:"false"`    // EmbeddedAPI serves the subscription REST resource from this process.
	APIStorage  string `env:"OCL_API_STORAGE" envDefault:"memory"`    // APIStorage is memory or postgres.
	RESTRoot    string `env:"OCL_REST_ROOT" envDefault:"/ws/rest/v1"` // RESTRoot prefixes the embedded resource path.
	SecretsKey  string `env:"OCL_SECRETS_KEY"`                        // SecretsKey seals tokens in Redis and Postgres (hex or base64, 32 bytes).
}

// Config aggregates every component configuration.
type Config struct {
	App    AppConfig
	Log    logger.Config
	HTTP   httpserver.Config
	Client ocl.Config
	Redis  redis.Config
	PG     pg.Config
}

// ErrInvalidConfig reports an unknown backend or a missing required setting.
var ErrInvalidConfig = errors.New("invalid configuration")

// loadConfig reads all sections from the environment and validates the
// backend selections.
func loadConfig() (Config, error) {
	var cfg Config
	if err := errors.Join(
		config.Load(&cfg.App),
		config.Load(&cfg.Log),
		config.Load(&cfg.HTTP),
		config.Load(&cfg.Client),
		config.Load(&cfg.Redis),
		config.Load(&cfg.PG),
	); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.App.CacheBackend {
	case BackendMemory:
	case BackendRedis:
		if c.App.SecretsKey == "" {
			return fmt.Errorf("%w: OCL_SECRETS_KEY is required for the redis cache", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: OCL_CACHE_BACKEND=%q", ErrInvalidConfig, c.App.CacheBackend)
	}
	if !c.App.EmbeddedAPI {
		return nil
	}
	switch c.App.APIStorage {
	case BackendMemory:
	case BackendPostgres:
		if c.PG.ConnectionString == "" {
			return fmt.Errorf("%w: PG_CONN_URL is required for postgres storage", ErrInvalidConfig)
		}
		if c.App.SecretsKey == "" {
			return fmt.Errorf("%w: OCL_SECRETS_KEY is required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: OCL_API_STORAGE=%q", ErrInvalidConfig, c.App.APIStorage)
	}
	return nil
}
