// internal/common/metrics/metrics.go
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compatibility_evaluations_total",
			Help: "Compatibility evaluations by scored category and recommendation tier",
		},
		[]string{"category", "recommendation"},
	)

	OverallScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "compatibility_overall_score",
			Help:    "Distribution of overall compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"category"},
	)

	CategoryFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compatibility_category_fallbacks_total",
			Help: "Evaluations whose category name was empty or unknown and fell back to the default",
		},
		[]string{"reason"},
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compatibility_batch_size",
			Help:    "Number of profiles scored per ranking job",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compatibility_cache_lookups_total",
			Help: "Cache lookups by cache name and result (hit, miss, error)",
		},
		[]string{"cache", "result"},
	)
)

// RecordEvaluation updates the evaluation counters for one scored pair.
func RecordEvaluation(category, recommendation string, overall int, fallback bool, requested string) {
	EvaluationsTotal.WithLabelValues(category, recommendation).Inc()
	OverallScore.WithLabelValues(category).Observe(float64(overall))
	if fallback {
		RecordCategoryFallback(requested)
	}
}

// RecordCategoryFallback counts one fallback. The requested name comes from
// job variables, so it is reduced to "empty" or "unknown" rather than used
// as a label value.
func RecordCategoryFallback(requested string) {
	reason := "unknown"
	if strings.TrimSpace(requested) == "" {
		reason = "empty"
	}
	CategoryFallbacks.WithLabelValues(reason).Inc()
}
