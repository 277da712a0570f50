// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services and handlers read them. The package has
// no net/http dependency so services can import it without pulling in transport code.
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithClient(ctx, requestcontext.Client{IP: "203.0.113.7"})
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	clientKey      struct{}
)

// Client describes the caller as seen by the edge middleware.
type Client struct {
	IP        string
	UserAgent string
	// Family is a low-cardinality User-Agent label such as "Firefox" or "bot:Googlebot".
	Family string
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ClientFrom returns the caller metadata, or the zero Client when unset.
func ClientFrom(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey{}).(Client)
	return c
}

// WithClient injects caller metadata into the context.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientIP is shorthand for ClientFrom(ctx).IP.
func ClientIP(ctx context.Context) string {
	return ClientFrom(ctx).IP
}

// ClientFamily is shorthand for ClientFrom(ctx).Family.
func ClientFamily(ctx context.Context) string {
	return ClientFrom(ctx).Family
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
