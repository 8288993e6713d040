package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
		[]string{"service"},
	)

	// Walk tracking metrics
	LocationSamplesSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_samples_saved_total",
			Help: "GPS samples accepted and persisted",
		},
		[]string{"source"},
	)

	LocationSamplesRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "location_samples_rejected_total",
			Help: "GPS samples rejected by coordinate validation",
		},
	)

	GeocodeFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_fallbacks_total",
			Help: "Reverse-geocode attempts that fell back to raw coordinates",
		},
	)

	ChatPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_polls_total",
			Help: "Chat transcript refreshes",
		},
		[]string{"result"},
	)

	ChatMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_sent_total",
			Help: "Chat messages accepted by the send endpoint",
		},
	)

	WalkWatchers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "walk_watchers_active",
			Help: "WebSocket clients currently watching a live walk",
		},
	)
)

// RecordHTTPMetrics records one served request.
func RecordHTTPMetrics(service, method, path string, status int, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}
