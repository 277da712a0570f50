package middleware

import (
	"context"

	"residentid/internal/ratelimit/models"
	"residentid/internal/ratelimit/ports"
)

// Limiter implements RateLimiter on top of a BucketStore with one budget per
// endpoint class.
type Limiter struct {
	store  ports.BucketStore
	limits models.Limits
}

// NewLimiter creates a Limiter with the given per-class budgets.
func NewLimiter(store ports.BucketStore, limits models.Limits) *Limiter {
	return &Limiter{
		store:  store,
		limits: limits,
	}
}

// Check consumes one request from the client's budget for class.
func (l *Limiter) Check(ctx context.Context, clientIP string, class models.EndpointClass) (*models.Decision, error) {
	limit, err := l.limits.For(class)
	if err != nil {
		return nil, err
	}
	return l.store.Allow(ctx, models.ClientKey(clientIP, class), limit.Requests, limit.Window)
}

// Ready reports whether the bucket store is reachable.
func (l *Limiter) Ready(ctx context.Context) error {
	return l.store.Ping(ctx)
}
