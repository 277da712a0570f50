package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts rate limit decisions.
type Metrics struct {
	Decisions *prometheus.CounterVec
}

// New registers the rate limit metrics with the default registry.
// Call it once per process.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the rate limit metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Decisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "residentid_ratelimit_decisions_total",
			Help: "Rate limit decisions by endpoint class and result",
		}, []string{"class", "result"}), // result: "allowed", "rejected", "error"
	}
}

// IncrementDecision is a no-op on a nil receiver.
func (m *Metrics) IncrementDecision(class, result string) {
	if m != nil {
		m.Decisions.WithLabelValues(class, result).Inc()
	}
}
