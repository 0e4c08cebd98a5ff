// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimizer_requests_total",
			Help: "Total number of optimization requests by outcome",
		},
		[]string{"outcome"}, // live, fallback, invalid, failed
	)

	OptimizationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "optimizer_request_duration_seconds",
			Help: "Duration of optimization request processing in seconds",
		},
		[]string{"outcome"},
	)

	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimizer_fallbacks_total",
			Help: "Total number of fallback resolutions by source",
		},
		[]string{"source"}, // cache, corridor, haversine
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optimizer_route_cache_hits_total",
			Help: "Total number of route cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optimizer_route_cache_misses_total",
			Help: "Total number of route cache misses",
		},
	)

	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimizer_provider_requests_total",
			Help: "Total number of upstream provider requests by status",
		},
		[]string{"provider", "status"}, // status: ok, error, timeout, rate_limited
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "optimizer_provider_request_duration_seconds",
			Help: "Duration of upstream provider requests in seconds",
		},
		[]string{"provider"},
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optimizer_batch_size",
			Help:    "Number of member requests per batch optimization",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)
