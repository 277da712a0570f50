// Package redis opens the shared Redis connection used by the rate limiter.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"residentid/internal/platform/config"
	"residentid/pkg/platform/sentinel"
)

const clientName = "residentid"

// New connects to the Redis server at cfg.URL and verifies it with a PING.
// It returns a nil client and nil error when no URL is configured.
func New(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.ClientName = clientName
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w: %w", sentinel.ErrUnavailable, err)
	}
	return client, nil
}
