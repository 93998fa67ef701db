package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ocladmin/pkg/config"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := func() Config {
		return Config{App: AppConfig{CacheBackend: BackendMemory, APIStorage: BackendMemory}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"redis cache", func(c *Config) {
			c.App.CacheBackend = BackendRedis
			c.App.SecretsKey = "k"
		}, false},
		{"redis cache without key", func(c *Config) { c.App.CacheBackend = BackendRedis }, true},
		{"unknown cache", func(c *Config) { c.App.CacheBackend = "disk" }, true},
		{"storage ignored without embedded api", func(c *Config) { c.App.APIStorage = "disk" }, false},
		{"unknown storage", func(c *Config) {
			c.App.EmbeddedAPI = true
			c.App.APIStorage = "disk"
		}, true},
		{"postgres without connection", func(c *Config) {
			c.App.EmbeddedAPI = true
			c.App.APIStorage = BackendPostgres
			c.App.SecretsKey = "k"
		}, true},
		{"postgres without key", func(c *Config) {
			c.App.EmbeddedAPI = true
			c.App.APIStorage = BackendPostgres
			c.PG.ConnectionString = "postgres://localhost/ocl"
		}, true},
		{"postgres", func(c *Config) {
			c.App.EmbeddedAPI = true
			c.App.APIStorage = BackendPostgres
			c.App.SecretsKey = "k"
			c.PG.ConnectionString = "postgres://localhost/ocl"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("OCL_BASE_PATH", "/admin/ocl")
	t.Setenv("OCL_CACHE_BACKEND", BackendMemory)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/admin/ocl", cfg.App.BasePath)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.False(t, cfg.App.EmbeddedAPI)
}
