// Package service exposes resident identifier validation to transports with
// logging, metrics and tracing around the pure domain validator.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"residentid/internal/residentid/domain"
	"residentid/internal/residentid/metrics"
	dErrors "residentid/pkg/domain-errors"
	"residentid/pkg/requestcontext"
)

const tracerName = "residentid/internal/residentid/service"

// OutcomeValid labels successful validations in metrics and spans.
const OutcomeValid = "valid"

// Service validates resident identifiers. It holds no mutable state and is
// safe for concurrent use.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Without it the service does not log.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks raw and returns the embedded attributes.
//
// Errors: a rejected identifier yields CodeValidation wrapping the
// domain.ValidationError; use domain.AsValidationError to classify it.
func (s *Service) Validate(ctx context.Context, raw string) (*domain.PersonalInfo, error) {
	ctx, span := s.tracer.Start(ctx, "residentid.Validate")
	defer span.End()

	start := time.Now()
	info, err := domain.Validate(raw)
	s.metrics.ObserveValidateLatency(time.Since(start))

	if err != nil {
		outcome := "unknown"
		if kind, ok := domain.AsValidationError(err); ok {
			outcome = kind.Code()
		}
		span.SetAttributes(attribute.String("residentid.outcome", outcome))
		s.metrics.IncrementOutcome(outcome)
		if s.logger != nil {
			s.logger.DebugContext(ctx, "resident ID rejected",
				"request_id", requestcontext.RequestID(ctx),
				"resident_id", domain.Mask(raw),
				"outcome", outcome,
			)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
	}

	span.SetAttributes(
		attribute.String("residentid.outcome", OutcomeValid),
		attribute.String("residentid.region", info.Address),
	)
	s.metrics.IncrementOutcome(OutcomeValid)
	if s.logger != nil {
		s.logger.DebugContext(ctx, "resident ID validated",
			"request_id", requestcontext.RequestID(ctx),
			"resident_id", domain.Mask(raw),
		)
	}
	return &info, nil
}
