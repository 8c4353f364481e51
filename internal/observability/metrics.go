package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoutesComputedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "courier_routing", Name: "routes_computed_total",
		Help: "Total number of driver routes computed",
	})
	SegmentsDegradedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "courier_routing", Name: "segments_degraded_total",
		Help: "Route segments that fell back to a straight line",
	})
	SegmentFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courier_routing", Name: "segment_fetch_duration_seconds",
		Help:    "Latency of external per-segment routing calls",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courier_routing", Name: "http_requests_total",
			Help: "Total HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "courier_routing", Name: "http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
