// Package metrics provides Prometheus metrics collection for the medication
// catalog service. It exports HTTP metrics for request performance:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// plus catalog metrics fed at load time:
//   - catalog_entries_total: Gauge for loaded catalog entries
//   - catalog_degraded: Gauge set to 1 when the catalog loaded empty
//   - search_results_returned: Histogram of result counts per search
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

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

	CatalogEntriesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_entries_total",
			Help: "Number of medication entries in the loaded catalog",
		},
	)

	CatalogDegraded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_degraded",
			Help: "1 when the catalog failed to load and the service degraded to empty suggestions",
		},
	)

	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_results_returned",
			Help:    "Result count per search request",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(CatalogEntriesTotal)
	prometheus.MustRegister(CatalogDegraded)
	prometheus.MustRegister(SearchResultsReturned)
}
