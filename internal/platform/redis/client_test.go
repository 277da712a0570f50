package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residentid/internal/platform/config"
	"residentid/pkg/platform/sentinel"
)

func TestNew(t *testing.T) {
	t.Run("returns nil when not configured", func(t *testing.T) {
		client, err := New(context.Background(), config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		_, err := New(context.Background(), config.RedisConfig{URL: "not a url"})
		assert.ErrorContains(t, err, "parse redis URL")
	})

	t.Run("unreachable server is unavailable", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, err := New(ctx, config.RedisConfig{
			URL:         "redis://127.0.0.1:1/0",
			PoolSize:    1,
			DialTimeout: 200 * time.Millisecond,
		})
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})
}
