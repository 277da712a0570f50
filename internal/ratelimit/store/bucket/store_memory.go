package bucket

import (
	"context"
	"math"
	"sync"
	"time"

	"residentid/internal/ratelimit/models"
)

// InMemoryBucketStore implements BucketStore using an in-memory sliding window.
// Counters are local to the process; use RedisBucketStore when several
// instances must share limits.
type InMemoryBucketStore struct {
	mu        sync.Mutex
	buckets   map[string]*slidingWindow
	now       func() time.Time
	nextSweep time.Time
}

// sweepInterval bounds how often Allow walks every bucket to evict idle keys.
const sweepInterval = time.Minute

// slidingWindow tracks request timestamps for sliding window rate limiting.
// A sliding window avoids the burst a fixed window allows at its boundary.
type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// InMemoryOption configures an InMemoryBucketStore.
type InMemoryOption func(*InMemoryBucketStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) InMemoryOption {
	return func(s *InMemoryBucketStore) {
		s.now = now
	}
}

// NewInMemoryBucketStore creates a new in-memory bucket store.
func NewInMemoryBucketStore(opts ...InMemoryOption) *InMemoryBucketStore {
	s := &InMemoryBucketStore{
		buckets: make(map[string]*slidingWindow),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Allow checks if a request is allowed and records it when it is.
func (s *InMemoryBucketStore) Allow(_ context.Context, key string, limit int, window time.Duration) (*models.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	sw := s.buckets[key]
	count := 0
	if sw != nil {
		sw.window = window
		sw.cleanup(now)
		count = len(sw.timestamps)
	}

	if count < limit {
		if sw == nil {
			sw = &slidingWindow{window: window}
			s.buckets[key] = sw
		}
		sw.timestamps = append(sw.timestamps, now)
		return &models.Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - len(sw.timestamps),
			ResetAt:   sw.timestamps[0].Add(window),
		}, nil
	}

	resetAt := now.Add(window)
	if count > 0 {
		resetAt = sw.timestamps[0].Add(window)
	}
	return &models.Decision{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retryAfterSeconds(now, resetAt),
	}, nil
}

// Ping always succeeds; the store lives in process memory.
func (s *InMemoryBucketStore) Ping(context.Context) error {
	return nil
}

// cleanup removes expired timestamps from a sliding window.
func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// sweep drops buckets whose requests have all left their window, at most
// once per sweepInterval. Must be called while holding s.mu.
func (s *InMemoryBucketStore) sweep(now time.Time) {
	if now.Before(s.nextSweep) {
		return
	}
	for key, sw := range s.buckets {
		sw.cleanup(now)
		if len(sw.timestamps) == 0 {
			delete(s.buckets, key)
		}
	}
	s.nextSweep = now.Add(sweepInterval)
}

// retryAfterSeconds rounds up so clients never retry early; minimum 1.
func retryAfterSeconds(now, resetAt time.Time) int {
	secs := int(math.Ceil(resetAt.Sub(now).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
