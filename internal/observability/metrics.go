package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for loading and querying sightings.
type Metrics struct {
	RecordsLoaded prometheus.Gauge
	RowsSkipped   prometheus.Counter
	LoadErrors    *prometheus.CounterVec // labels: reason={missing_file,read_error}

	// Query metrics.
	Queries        *prometheus.CounterVec // labels: operation
	RecordsSkipped *prometheus.CounterVec // labels: operation, reason={malformed_duration}
	QueryCache     *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RecordsLoaded,
		m.RowsSkipped,
		m.LoadErrors,
		m.Queries,
		m.RecordsSkipped,
		m.QueryCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sightings",
			Name:      "records_loaded",
			Help:      "Number of sighting records held in memory.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sightings",
			Name:      "rows_skipped_total",
			Help:      "CSV rows that could not be parsed and were skipped at load.",
		}),
		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sightings",
			Name:      "load_errors_total",
			Help:      "Dataset load failures by reason.",
		}, []string{"reason"}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sightings",
			Name:      "queries_total",
			Help:      "Queries executed by operation.",
		}, []string{"operation"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sightings",
			Name:      "records_skipped_total",
			Help:      "Records skipped by a query because a field could not be coerced.",
		}, []string{"operation", "reason"}),
		QueryCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sightings",
			Name:      "query_cache_total",
			Help:      "Query cache lookups by result.",
		}, []string{"result"}),
	}
}
