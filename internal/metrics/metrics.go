// Package metrics holds the Prometheus collectors of the panorama proxy. Collectors register
// with the default registry on import and are exposed by the proxy's /metrics route.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP surface
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tour_proxy_requests_total",
			Help: "Total number of proxy requests by route and status code",
		},
		[]string{"route", "status"},
	)

	ProxyRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tour_proxy_request_duration_seconds",
			Help:    "Proxy request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	ProxyResponseBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tour_proxy_response_bytes_total",
			Help: "Bytes of image data relayed to clients",
		},
		[]string{"route"},
	)

	// Upstream backend
	UpstreamFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tour_upstream_fetch_duration_seconds",
			Help:    "Latency of backend fetches in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)

	UpstreamErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tour_upstream_errors_total",
			Help: "Backend fetch failures by kind and reason",
		},
		[]string{"kind", "reason"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tour_upstream_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// RecordRequest records one finished proxy request.
func RecordRequest(route string, status int, elapsed time.Duration, bytes int) {
	ProxyRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	ProxyRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
	if bytes > 0 {
		ProxyResponseBytes.WithLabelValues(route).Add(float64(bytes))
	}
}

// RecordUpstream records one backend fetch. reason is empty on success.
func RecordUpstream(kind string, elapsed time.Duration, reason string) {
	UpstreamFetchDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if reason != "" {
		UpstreamErrorsTotal.WithLabelValues(kind, reason).Inc()
	}
}
