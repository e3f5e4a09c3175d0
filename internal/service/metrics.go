package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ugc_pipeline_runs_total",
			Help: "Pipeline runs by outcome.",
		},
		[]string{"status"},
	)
	pipelineStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ugc_pipeline_step_duration_seconds",
			Help:    "Duration of each pipeline step.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 9),
		},
		[]string{"step"},
	)
	mediaGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ugc_media_generated_total",
			Help: "Generated images and videos by kind and outcome.",
		},
		[]string{"kind", "status"},
	)
)
