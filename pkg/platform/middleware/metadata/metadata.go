// Package metadata records who is calling before any handler runs.
package metadata

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/mssola/useragent"

	"residentid/pkg/requestcontext"
)

// ClientMetadata returns middleware that stores the caller's IP, User-Agent and
// client family in the request context. Apply it before rate limiting.
//
// X-Forwarded-For and X-Real-IP are honoured only when trustProxyHeaders is set;
// otherwise any client could pick its own rate limit bucket.
func ClientMetadata(trustProxyHeaders bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgent := r.Header.Get("User-Agent")
			ctx := requestcontext.WithClient(r.Context(), requestcontext.Client{
				IP:        ClientIPFromRequest(r, trustProxyHeaders),
				UserAgent: userAgent,
				Family:    ClientFamily(userAgent),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientFamily reduces a User-Agent to a low-cardinality label for logs,
// e.g. "Firefox", "bot:Googlebot" or "unknown".
func ClientFamily(userAgent string) string {
	if userAgent == "" {
		return "unknown"
	}
	ua := useragent.New(userAgent)
	name, _ := ua.Browser()
	if name == "" {
		name = "unknown"
	}
	if ua.Bot() {
		return "bot:" + name
	}
	return name
}

// ClientIPFromRequest extracts the client IP. Proxy headers are consulted first
// when trusted; a header value that is not an IP address is ignored.
func ClientIPFromRequest(r *http.Request, trustProxyHeaders bool) string {
	if trustProxyHeaders {
		// X-Forwarded-For is "client, proxy1, proxy2"; the first entry is the client.
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip, ok := parseIP(first); ok {
				return ip
			}
		}
		if ip, ok := parseIP(r.Header.Get("X-Real-IP")); ok {
			return ip
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

func parseIP(s string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return addr.String(), true
}
