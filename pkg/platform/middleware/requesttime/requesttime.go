// Package requesttime pins one "now" per request, so an age computed in a
// handler agrees with the timestamps it logs.
package requesttime

import (
	"net/http"
	"time"

	"residentid/pkg/requestcontext"
)

// New returns middleware that stores now() in the request context.
// A nil clock means time.Now.
func New(now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
