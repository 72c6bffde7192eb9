// Package metrics provides Prometheus metrics for the HTTP server and the
// outbound OpenFDA client. All metrics are registered with the default
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

	FDARequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openfda_request_total",
			Help: "Total outbound OpenFDA API requests",
		},
		[]string{"endpoint", "status"},
	)

	FDARequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "openfda_request_duration_seconds",
			Help:    "Outbound OpenFDA API request latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets currently tracked",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(FDARequestTotals)
	prometheus.MustRegister(FDARequestDuration)
	prometheus.MustRegister(RateLimiterBucketsTotal)
}
