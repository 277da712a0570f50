// Package request provides the request ID middleware.
package request

import (
	"net/http"

	"github.com/google/uuid"

	"residentid/pkg/requestcontext"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// maxInboundIDLength bounds caller-supplied request IDs before they reach logs.
const maxInboundIDLength = 128

// RequestID reuses a caller-supplied X-Request-ID when it is reasonable and
// otherwise generates a UUIDv4. The ID is echoed in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > maxInboundIDLength {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
