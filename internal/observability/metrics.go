package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the tracker.
type Metrics struct {
	// Feed fetch metrics.
	FeedRequests *prometheus.CounterVec   // labels: feed={best,forecast}, outcome={success,not_found,error}
	FeedDuration *prometheus.HistogramVec // labels: feed={best,forecast}

	// Listing cache metrics.
	CacheLookups    *prometheus.CounterVec // labels: result={hit,miss,stale,empty}
	RefreshDuration prometheus.Histogram
	ActiveStorms    prometheus.Gauge

	// Snapshot publishing.
	SnapshotsPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all tracker metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedRequests,
		m.FeedDuration,
		m.CacheLookups,
		m.RefreshDuration,
		m.ActiveStorms,
		m.SnapshotsPublished,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cyclone",
			Name:      "feed_requests_total",
			Help:      "ATCF feed requests by feed and outcome.",
		}, []string{"feed", "outcome"}),
		FeedDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cyclone",
			Name:      "feed_request_duration_seconds",
			Help:      "ATCF feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"feed"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cyclone",
			Name:      "storm_cache_lookups_total",
			Help:      "Active storm listing lookups by cache result.",
		}, []string{"result"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cyclone",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a full storm enumeration cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30},
		}),
		ActiveStorms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cyclone",
			Name:      "active_storms",
			Help:      "Number of active storms in the last successful refresh.",
		}),
		SnapshotsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cyclone",
			Name:      "snapshots_published_total",
			Help:      "Storm snapshot messages published by outcome.",
		}, []string{"outcome"}),
	}
}
