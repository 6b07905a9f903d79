package health

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Path labels carry chi route patterns, never raw ticket numbers.
var (
	HttpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "comandas",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of API requests by route pattern",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path", "status"},
	)

	HttpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "comandas",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "API requests by route pattern and status",
		},
		[]string{"method", "path", "status"},
	)

	HttpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "comandas",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served",
		},
	)
)
