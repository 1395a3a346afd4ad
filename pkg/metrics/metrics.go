// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ChatMessagesTotal counts persisted chat messages by sender.
	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Chat messages persisted, by sender",
		},
		[]string{"sender"},
	)

	// ConversationsCreated counts new conversations by how the session was resolved.
	ConversationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_conversations_created_total",
			Help: "Conversations created, by session resolution branch",
		},
		[]string{"branch"},
	)

	// LLMRequestDuration tracks generative call latency.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Generative reply call duration",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "status"},
	)

	// LLMFallbacksTotal counts replies replaced by a fallback text.
	LLMFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_fallbacks_total",
			Help: "Generative failures absorbed into a fallback reply",
		},
		[]string{"reason"},
	)

	// RatingRecomputations counts aggregate rating recomputations.
	RatingRecomputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_recomputations_total",
			Help: "Rating aggregate recomputations, by entity kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// RateLimitRejections counts requests refused by a rate limiter.
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Requests rejected by rate limiting",
		},
		[]string{"limiter"},
	)
)
