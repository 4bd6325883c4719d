// Package metrics defines the Prometheus collectors for the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestDuration tracks HTTP request latency by endpoint, method and status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trends_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// RequestsInFlight is the number of HTTP requests currently being served.
	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trends_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	// CacheHits counts ranking requests answered from the response cache.
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trends_cache_hits_total",
			Help: "Total response cache hits.",
		},
	)

	// CacheMisses counts ranking requests that ran the full pipeline.
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trends_cache_misses_total",
			Help: "Total response cache misses.",
		},
	)

	// UpstreamCalls counts YouTube Data API calls by operation.
	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trends_upstream_calls_total",
			Help: "Total YouTube Data API calls, by operation.",
		},
		[]string{"operation"},
	)

	// UpstreamErrors counts classified upstream failures.
	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trends_upstream_errors_total",
			Help: "Total YouTube Data API failures, by error kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration,
		RequestsInFlight,
		CacheHits,
		CacheMisses,
		UpstreamCalls,
		UpstreamErrors,
	)
}
