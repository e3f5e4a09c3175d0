package ai

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ugc_studio_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"provider", "model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ugc_studio_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ugc_studio_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"provider", "model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ugc_studio_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"provider", "model"},
	)
	aiRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ugc_studio_ai_rate_limit_retries_total",
			Help: "Retries scheduled after a rate-limited AI call.",
		},
	)
)

func observeSuccess(provider, model string, duration time.Duration, usage UsageInfo) {
	aiRequestsTotal.WithLabelValues(provider, model, "success").Inc()
	aiRequestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
	if usage.TotalTokens > 0 {
		aiPromptTokens.WithLabelValues(provider, model).Observe(float64(usage.PromptTokens))
		aiCompletionTokens.WithLabelValues(provider, model).Observe(float64(usage.CompletionTokens))
	}
}

func observeFailure(provider, model, status string) {
	aiRequestsTotal.WithLabelValues(provider, model, status).Inc()
}
