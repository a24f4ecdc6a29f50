package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report outcomes
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeFailure    = "failure"
)

// Metrics holds all application metrics
type Metrics struct {
	// Report related metrics
	ReportsGenerated   *prometheus.CounterVec
	ReportLatency      prometheus.Histogram
	ReportAppointments prometheus.Histogram

	// Store metrics
	StoreLookups *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "generated_total",
			Help:      "Total number of revenue reports by outcome",
		}, []string{"outcome"}),
		ReportLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "duration_seconds",
			Help:      "Time spent generating revenue reports",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		ReportAppointments: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "appointments",
			Help:      "Number of appointments per generated report",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),

		StoreLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "lookups_total",
			Help:      "Total number of store lookups issued while building reports",
		}, []string{"entity", "result"}),
	}
}

// New creates metrics on a private registry, for tests and tools.
func New(namespace string) *Metrics {
	return NewMetrics(namespace, prometheus.NewRegistry())
}
