// Package metrics holds the Prometheus collectors exposed by the settings
// server on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts settings server requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vrtimer",
			Name:      "http_requests_total",
			Help:      "Settings server requests by route and status code",
		},
		[]string{"route", "status"},
	)

	// HTTPRequestDuration tracks settings server latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vrtimer",
			Name:      "http_request_duration_seconds",
			Help:      "Settings server request duration in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"route"},
	)

	// SpeedMultiplier is the multiplier currently published in config.json.
	SpeedMultiplier = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vrtimer",
			Name:      "speed_multiplier",
			Help:      "Timer speed multiplier served to clients",
		},
	)
)
