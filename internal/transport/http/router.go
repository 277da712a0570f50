package httptransport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	platformmetrics "residentid/internal/platform/metrics"
	ratelimitmw "residentid/internal/ratelimit/middleware"
	"residentid/internal/ratelimit/models"
	residentidhandler "residentid/internal/residentid/handler"
	"residentid/pkg/platform/httputil"
	"residentid/pkg/platform/middleware/metadata"
	request "residentid/pkg/platform/middleware/request"
	"residentid/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router mounts. Every field but ResidentIDs may be nil.
type Deps struct {
	ResidentIDs *residentidhandler.Handler
	RateLimit   *ratelimitmw.Middleware
	HTTPMetrics *platformmetrics.Metrics
	Metrics     http.Handler
	// Ready backs /health; a non-nil error reports the service unavailable.
	Ready func(ctx context.Context) error
	// TrustProxyHeaders takes the client IP from X-Forwarded-For when set.
	TrustProxyHeaders bool
	// Clock pins request time; nil means time.Now.
	Clock func() time.Time
}

// NewRouter wires all public endpoints. Handlers stay thin and delegate to
// services; cross-cutting concerns live in middleware here.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(request.RequestID)
	r.Use(requesttime.New(deps.Clock))
	r.Use(metadata.ClientMetadata(deps.TrustProxyHeaders))
	r.Use(deps.HTTPMetrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.Ready != nil {
			if err := deps.Ready(req.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	metricsHandler := deps.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/v1", func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.RateLimit(models.ClassValidation))
		}
		deps.ResidentIDs.Register(r)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	})

	return r
}
