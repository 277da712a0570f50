package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"residentid/internal/platform/config"
	"residentid/internal/platform/httpserver"
	"residentid/internal/platform/logger"
	platformmetrics "residentid/internal/platform/metrics"
	platformredis "residentid/internal/platform/redis"
	ratelimitmetrics "residentid/internal/ratelimit/metrics"
	ratelimitmw "residentid/internal/ratelimit/middleware"
	"residentid/internal/ratelimit/models"
	"residentid/internal/ratelimit/ports"
	"residentid/internal/ratelimit/store/bucket"
	residentidhandler "residentid/internal/residentid/handler"
	residentidmetrics "residentid/internal/residentid/metrics"
	"residentid/internal/residentid/service"
	httptransport "residentid/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Validation logic lives in internal/residentid.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newBucketStore(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeStore()

	limiter := ratelimitmw.NewLimiter(store, models.Limits{
		models.ClassValidation: {Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window},
	})

	svc := service.New(
		service.WithLogger(log),
		service.WithMetrics(residentidmetrics.New()),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		ResidentIDs: residentidhandler.New(svc, log),
		RateLimit: ratelimitmw.New(limiter, log,
			ratelimitmw.WithDisabled(cfg.RateLimit.Disabled),
			ratelimitmw.WithMetrics(ratelimitmetrics.New()),
		),
		HTTPMetrics:       platformmetrics.New(),
		Ready:             limiter.Ready,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	srv := httpserver.New(cfg.Addr, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting residentid server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newBucketStore picks the Redis store when REDIS_URL is set and falls back to
// process-local counters otherwise.
func newBucketStore(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (ports.BucketStore, func(), error) {
	client, err := platformredis.New(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		log.Info("rate limit store", "backend", "memory")
		return bucket.NewInMemoryBucketStore(), func() {}, nil
	}
	log.Info("rate limit store", "backend", "redis")
	return bucket.NewRedisBucketStore(client), func() {
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}, nil
}
