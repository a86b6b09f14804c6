package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_relay_ai_requests_total",
			Help: "Total number of chat-completion requests sent to the inference API.",
		},
		[]string{"model", "emotion", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_relay_ai_request_duration_seconds",
			Help:    "Duration of chat-completion requests.",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"model"},
	)
	aiTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_relay_ai_tokens",
			Help:    "Token counts reported by the inference API.",
			Buckets: prometheus.LinearBuckets(100, 100, 20), // 100, 200, ..., 2000
		},
		[]string{"model", "kind"},
	)
)

const (
	statusSuccess       = "success"
	statusUpstreamError = "upstream_error"
	statusEmpty         = "empty_response"
	statusError         = "error"
)
