package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ocladmin/pkg/config"
)

type appConfig struct {
	BasePath string        `env:"CONFIG_TEST_BASE_PATH" envDefault:"/ocl"`
	Timeout  time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"30s"`
	Embedded bool          `env:"CONFIG_TEST_EMBEDDED" envDefault:"true"`
}

type requiredConfig struct {
	URL string `env:"CONFIG_TEST_REQUIRED_URL,required"`
}

type fileConfig struct {
	Value string   `env:"CONFIG_TEST_FILE_VALUE"`
	List  []string `env:"CONFIG_TEST_FILE_LIST" envSeparator:","`
}

type prefixedConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

func TestLoad(t *testing.T) {
	config.Reset()
	t.Setenv("CONFIG_TEST_BASE_PATH", "/admin/ocl")

	var cfg appConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "/admin/ocl", cfg.BasePath)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.Embedded)

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_BASE_PATH", "/changed")

		var again appConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "/admin/ocl", again.BasePath)

		config.Reset()
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "/changed", again.BasePath)
	})
}

func TestLoad_Errors(t *testing.T) {
	config.Reset()

	var cfg requiredConfig
	require.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	require.ErrorIs(t, config.Load[appConfig](nil), config.ErrNilPointer)
}

func TestLoad_Prefix(t *testing.T) {
	config.Reset()
	t.Setenv("OCL_ADDR", ":9090")

	var plain, prefixed prefixedConfig
	require.NoError(t, config.Load(&plain))
	require.NoError(t, config.Load(&prefixed, config.WithPrefix("OCL_")))
	assert.Equal(t, ":8080", plain.Addr)
	assert.Equal(t, ":9090", prefixed.Addr)
}

func TestLoadEnv(t *testing.T) {
	config.Reset()

	require.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnv)

	require.NoError(t, config.LoadEnv("testdata/.env.test"))
	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Value)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.List)
}
