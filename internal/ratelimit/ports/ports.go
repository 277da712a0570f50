// Package ports declares what the rate limiter needs from its storage.
package ports

import (
	"context"
	"time"

	"residentid/internal/ratelimit/models"
)

// BucketStore keeps one sliding window of request timestamps per key.
// Implementations must be safe for concurrent use.
type BucketStore interface {
	// Allow records a request against key when it fits in limit requests per
	// window. Rejected requests are not recorded.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Decision, error)

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
