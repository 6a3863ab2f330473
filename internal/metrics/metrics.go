// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GradingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradings_total",
			Help: "Total number of graded submissions",
		},
		[]string{"subject", "data_type"},
	)

	GradingScoreHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grading_score",
			Help:    "Distribution of grading scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"subject"},
	)

	InviteConsumptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invite_consumptions_total",
			Help: "Invite code consumption attempts by outcome",
		},
		[]string{"result"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
