package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"residentid/internal/ratelimit/metrics"
	"residentid/internal/ratelimit/models"
	"residentid/pkg/platform/httputil"
	"residentid/pkg/platform/privacy"
	"residentid/pkg/requestcontext"
)

// RateLimiter decides whether a client may spend one more request.
type RateLimiter interface {
	Check(ctx context.Context, clientIP string, class models.EndpointClass) (*models.Decision, error)
}

// Middleware enforces per-client budgets on chi route groups.
type Middleware struct {
	limiter  RateLimiter
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

// Option configures a Middleware.
type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithMetrics records allowed and rejected decisions.
func WithMetrics(metrics *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = metrics
	}
}

// New builds the middleware. Rate limiting is on unless WithDisabled(true) is passed.
func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit limits requests per client IP. Limiter failures fail open so a
// store outage does not take validation down with it.
func (m *Middleware) RateLimit(class models.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			decision, err := m.limiter.Check(ctx, ip, class)
			if err != nil {
				m.logger.ErrorContext(ctx, "rate limit check failed, allowing request",
					"error", err,
					"ip_prefix", privacy.AnonymizeIP(ip),
					"request_id", requestcontext.RequestID(ctx),
				)
				m.metrics.IncrementDecision(string(class), "error")
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, decision)
			m.metrics.IncrementDecision(string(class), decision.Outcome())

			if !decision.Allowed {
				m.logger.WarnContext(ctx, "rate limit exceeded",
					"ip_prefix", privacy.AnonymizeIP(ip),
					"class", class,
					"retry_after", decision.RetryAfter,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeRateLimitExceeded(w, decision)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, decision *models.Decision) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, decision *models.Decision) {
	w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:            "rate_limit_exceeded",
		ErrorDescription: "too many validation requests from this client, retry later",
		RetryAfter:       decision.RetryAfter,
	})
}
