package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the sync engine.
type Metrics struct {
	EventsApplied    prometheus.Counter
	EventsDropped    prometheus.Counter
	EchoesSuppressed prometheus.Counter
	ToastsRaised     prometheus.Counter

	Submissions *prometheus.CounterVec // labels: outcome={accepted,rejected,failed}
	BulkLoads   *prometheus.CounterVec // labels: mode={replace,merge}

	SessionActive prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.EventsApplied,
		m.EventsDropped,
		m.EchoesSuppressed,
		m.ToastsRaised,
		m.Submissions,
		m.BulkLoads,
		m.SessionActive,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// parallel tests do not trip over "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		EventsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadwatch",
			Name:      "events_applied_total",
			Help:      "Push events applied to the hazard set.",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadwatch",
			Name:      "events_dropped_total",
			Help:      "Malformed or stale push events dropped.",
		}),
		EchoesSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadwatch",
			Name:      "echoes_suppressed_total",
			Help:      "Push events recognized as confirmations of this client's own reports.",
		}),
		ToastsRaised: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadwatch",
			Name:      "toasts_raised_total",
			Help:      "Transient new-hazard notifications shown.",
		}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadwatch",
			Name:      "submissions_total",
			Help:      "Local hazard submissions by outcome.",
		}, []string{"outcome"}),
		BulkLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadwatch",
			Name:      "bulk_loads_total",
			Help:      "Bulk loads applied, by merge strategy.",
		}, []string{"mode"}),
		SessionActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roadwatch",
			Name:      "session_active",
			Help:      "1 while a sync session is active, 0 otherwise.",
		}),
	}
}
