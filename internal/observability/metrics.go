package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the sighting API.
type Metrics struct {
	SightingsInserted prometheus.Counter
	InsertRejections  *prometheus.CounterVec // labels: reason={vocabulary,mismatch,date,duplicate}
	QueryErrors       prometheus.Counter

	// Seed import metrics.
	SightingsImported prometheus.Counter
	ImportDropped     *prometheus.CounterVec // labels: reason={vocabulary,missing_field,bad_date,out_of_window,duplicate}

	RequestDuration *prometheus.HistogramVec // labels: route, status
}

// NewMetrics creates and registers all API metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SightingsInserted,
		m.InsertRejections,
		m.QueryErrors,
		m.SightingsImported,
		m.ImportDropped,
		m.RequestDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SightingsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tick_api",
			Name:      "sightings_inserted_total",
			Help:      "Total sightings accepted by the insert endpoint.",
		}),
		InsertRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tick_api",
			Name:      "insert_rejections_total",
			Help:      "Insert endpoint rejections by reason.",
		}, []string{"reason"}),
		QueryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tick_api",
			Name:      "query_errors_total",
			Help:      "Read queries that failed at the storage layer.",
		}),
		SightingsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tick_api",
			Name:      "sightings_imported_total",
			Help:      "Rows loaded by the one-time seed import.",
		}),
		ImportDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tick_api",
			Name:      "import_dropped_total",
			Help:      "Seed rows dropped during import, by reason.",
		}, []string{"reason"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tick_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route and status.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
	}
}
