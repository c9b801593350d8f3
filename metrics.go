package client

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "revesshop_client",
			Name:      "requests_total",
			Help:      "Requests that received a response, by method and status code.",
		},
		[]string{"method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "revesshop_client",
			Name:      "request_duration_seconds",
			Help:      "Round trip latency of API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	inFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "revesshop_client",
			Name:      "requests_in_flight",
			Help:      "Requests currently waiting for a response.",
		},
	)

	supersededTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "revesshop_client",
			Name:      "superseded_total",
			Help:      "Calls cancelled because a newer call with the same key started.",
		},
		[]string{"key"},
	)
)

// instrumentTransport records request metrics around base.
func instrumentTransport(base http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperInFlight(inFlight,
		promhttp.InstrumentRoundTripperCounter(requestsTotal,
			promhttp.InstrumentRoundTripperDuration(requestDuration, base),
		),
	)
}
