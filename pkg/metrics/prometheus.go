package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FlightsProcessed   prometheus.Counter
	CrewProcessed      prometheus.Counter
	MonthReports       prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	LimitsExceeded     *prometheus.CounterVec
	PersistenceErrors  *prometheus.CounterVec
	RunDuration        prometheus.Histogram
}

// NewMetrics creates new prometheus metrics registered on reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FlightsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_processed_total",
			Help:      "The total number of valid flights linked to crew",
		}),
		CrewProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crew_processed_total",
			Help:      "The total number of crew members aggregated",
		}),
		MonthReports: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "month_reports_total",
			Help:      "The total number of month reports produced",
		}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "The total number of rejected input records",
		}, []string{"record", "kind"}),
		LimitsExceeded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "limits_exceeded_total",
			Help:      "The total number of month reports exceeding a flight-time limit",
		}, []string{"limit"}),
		PersistenceErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_errors_total",
			Help:      "The total number of failed loads and saves",
		}, []string{"sink"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Time taken by one load-compute-publish cycle",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// NewNopMetrics returns metrics registered on a private registry
func NewNopMetrics() *Metrics {
	return NewMetrics("test", prometheus.NewRegistry())
}
