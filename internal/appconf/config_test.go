package appconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ENV", "FEED_PATH", "DB_PATH", "OUTPUT_DIR", "PROFILES_FILE", "LOG_LEVEL",
		"BUS_ROUTE_TYPES", "PORT", "RATE_LIMIT", "PLAN_CACHE_SIZE", "REFRESH_INTERVAL", "API_KEYS"} {
		t.Setenv(k, "")
	}
}

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Production, EnvFlagToEnvironment(" Production "))
	assert.Equal(t, Production, EnvFlagToEnvironment("prod"))
	assert.Equal(t, Development, EnvFlagToEnvironment("development"))
	assert.Equal(t, Development, EnvFlagToEnvironment("staging"))
	assert.Equal(t, "test", Test.String())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, ".", cfg.FeedPath)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, []int{700}, cfg.RouteTypes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, 32, cfg.CacheSize)
	assert.Zero(t, cfg.RefreshInterval)
	assert.Empty(t, cfg.ApiKeys)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("FEED_PATH", "https://example.com/gtfs.zip")
	t.Setenv("BUS_ROUTE_TYPES", "700, 3")
	t.Setenv("PORT", "8080")
	t.Setenv("REFRESH_INTERVAL", "6h")
	t.Setenv("API_KEYS", "alpha, beta,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Env)
	assert.Equal(t, "https://example.com/gtfs.zip", cfg.FeedPath)
	assert.Equal(t, []int{700, 3}, cfg.RouteTypes)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 6*time.Hour, cfg.RefreshInterval)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.ApiKeys)
}

func TestLoadFromDotEnv(t *testing.T) {
	clearEnv(t)
	for _, k := range []string{"OUTPUT_DIR", "LOG_LEVEL"} {
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OUTPUT_DIR=/srv/out\nLOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() {
		_ = os.Unsetenv("OUTPUT_DIR")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/out", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"BUS_ROUTE_TYPES":  "bus",
		"PORT":             "0",
		"RATE_LIMIT":       "many",
		"PLAN_CACHE_SIZE":  "-1",
		"REFRESH_INTERVAL": "daily",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestParseRouteTypes(t *testing.T) {
	types, err := ParseRouteTypes("700,712")
	require.NoError(t, err)
	assert.Equal(t, []int{700, 712}, types)

	_, err = ParseRouteTypes(" , ")
	assert.Error(t, err)
	_, err = ParseRouteTypes("-3")
	assert.Error(t, err)
}
