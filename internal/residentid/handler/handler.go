package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"residentid/internal/residentid/domain"
	"residentid/pkg/platform/httputil"
	"residentid/pkg/requestcontext"
)

// Service defines the interface for resident ID operations.
type Service interface {
	Validate(ctx context.Context, raw string) (*domain.PersonalInfo, error)
}

// Handler wires resident ID endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a resident ID handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts resident ID endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/resident-ids/validate", h.HandleValidate)
}

// HandleValidate handles POST /resident-ids/validate requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	info, err := h.service.Validate(ctx, *req.ResidentID)
	if err != nil {
		if kind, ok := domain.AsValidationError(err); ok {
			h.logger.InfoContext(ctx, "resident ID invalid",
				"request_id", requestID,
				"reason", kind.Code(),
				"client", requestcontext.ClientFamily(ctx),
			)
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, FromValidationError(kind))
			return
		}
		h.logger.ErrorContext(ctx, "resident ID validation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "resident ID valid",
		"request_id", requestID,
		"client", requestcontext.ClientFamily(ctx),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromPersonalInfo(info, requestcontext.Now(ctx)))
}
