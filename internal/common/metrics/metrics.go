// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActionsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_actions_dispatched_total",
			Help: "Total number of form actions applied to sessions",
		},
		[]string{"action"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_validation_failures_total",
			Help: "Total number of submit attempts rejected by validation, by first invalid field",
		},
		[]string{"form", "field"},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Total number of upstream submissions by outcome",
		},
		[]string{"form", "status"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_submission_duration_seconds",
			Help:    "Duration of upstream submissions in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"form"},
	)

	SubmissionsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "intake_submissions_in_flight",
			Help: "Number of upstream submissions currently in flight",
		},
		[]string{"form"},
	)

	SchemaViolations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_schema_violations_total",
			Help: "Built payloads that failed the upstream schema check",
		},
	)
)
