package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Empty(t, cfg.Redis.URL)
		assert.Equal(t, 10, cfg.Redis.PoolSize)
		assert.False(t, cfg.RateLimit.Disabled)
		assert.Equal(t, 60, cfg.RateLimit.Requests)
		assert.Equal(t, time.Minute, cfg.RateLimit.Window)
		assert.False(t, cfg.TrustProxyHeaders)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RESIDENTID_ADDR", ":9090")
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("REDIS_URL", "redis://localhost:6379/1")
		t.Setenv("RATE_LIMIT_REQUESTS", "5")
		t.Setenv("RATE_LIMIT_WINDOW", "30s")
		t.Setenv("TRUST_PROXY_HEADERS", "true")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
		assert.Equal(t, 5, cfg.RateLimit.Requests)
		assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
		assert.True(t, cfg.TrustProxyHeaders)
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")

		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("rejects non-positive limits", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_REQUESTS", "0")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "RATE_LIMIT_REQUESTS")
	})

	t.Run("zero limit allowed when disabled", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_DISABLED", "true")
		t.Setenv("RATE_LIMIT_REQUESTS", "0")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.RateLimit.Disabled)
	})
}

func TestFromEnv_DotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		cfg, err := fromEnv(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
	})

	t.Run("values load under the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nLOG_FORMAT=json\n"), 0o600))
		t.Setenv("LOG_FORMAT", "text")
		t.Cleanup(func() { _ = os.Unsetenv("LOG_LEVEL") })

		cfg, err := fromEnv(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("unreadable file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.Mkdir(path, 0o700))

		_, err := fromEnv(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load "+path)
	})
}
