package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the simulation engine.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec // label: outcome={remote,local}
	RejectedTotal prometheus.Counter
	FailuresTotal prometheus.Counter
	RunDuration   prometheus.Histogram
	HistorySize   prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meteorsim",
			Name:      "runs_total",
			Help:      "Completed simulation runs by computation outcome.",
		}, []string{"outcome"}),
		RejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteorsim",
			Name:      "rejected_total",
			Help:      "Runs rejected by parameter validation.",
		}),
		FailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meteorsim",
			Name:      "failures_total",
			Help:      "Runs where both the remote and local paths failed.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "meteorsim",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a complete run including the remote attempt.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		HistorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meteorsim",
			Name:      "history_size",
			Help:      "Entries currently retained in the simulation history.",
		}),
	}
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.RejectedTotal,
		m.FailuresTotal,
		m.RunDuration,
		m.HistorySize,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
