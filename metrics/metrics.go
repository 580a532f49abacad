// Package metrics provides Prometheus metrics for HTTP serving and for the
// vaccines domain: browse searches, comparison tables, sessions and dataset
// reloads.
//
// All metrics are registered with the Prometheus default registry during
// package initialization and exposed on /metrics by the server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	BrowseSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaccines_browse_searches_total",
			Help: "Browse tab filter requests",
		},
		[]string{"tab"},
	)

	ComparisonTablesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaccines_comparison_tables_total",
			Help: "Comparison tables built, by subject variant",
		},
		[]string{"variant"},
	)

	ComparisonRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaccines_comparison_rejections_total",
			Help: "Comparison edits or builds rejected, by reason",
		},
		[]string{"reason"},
	)

	ComparisonCapWarningsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vaccines_comparison_cap_warnings_total",
			Help: "Selections over the vaccine cap allowed by the advisory policy",
		},
	)

	CompareSessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vaccines_compare_sessions_active",
			Help: "Comparison sessions currently held in memory",
		},
	)

	DatasetEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vaccines_dataset_entities",
			Help: "Entities in the current dataset snapshot",
		},
		[]string{"collection"},
	)

	DatasetReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vaccines_dataset_reloads_total",
			Help: "Dataset reload attempts, by result",
		},
		[]string{"result"},
	)

	DatasetReloadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vaccines_dataset_reload_duration_seconds",
			Help:    "Time spent loading and indexing the dataset",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestTotals,
		HTTPRequestDuration,
		HTTPRequestInFlight,
		RateLimiterBucketsTotal,
		BrowseSearchesTotal,
		ComparisonTablesTotal,
		ComparisonRejectionsTotal,
		ComparisonCapWarningsTotal,
		CompareSessionsActive,
		DatasetEntities,
		DatasetReloadsTotal,
		DatasetReloadDuration,
	)
}

// RecordDataset publishes the collection sizes of a freshly loaded snapshot
func RecordDataset(counts map[string]int) {
	for collection, n := range counts {
		DatasetEntities.WithLabelValues(collection).Set(float64(n))
	}
}

// RecordReload counts one reload attempt and, when it succeeded, its duration
func RecordReload(err error, elapsed time.Duration) {
	if err != nil {
		DatasetReloadsTotal.WithLabelValues("failure").Inc()
		return
	}
	DatasetReloadsTotal.WithLabelValues("success").Inc()
	DatasetReloadDuration.Observe(elapsed.Seconds())
}
