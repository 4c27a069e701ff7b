package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	predictionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betgenius_predictions_generated_total",
		Help: "Total number of predictions inserted by rollovers",
	})

	predictionsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betgenius_predictions_settled_total",
		Help: "Total number of pending predictions flipped to a terminal status",
	}, []string{"status"})

	rolloverFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betgenius_rollover_failures_total",
		Help: "Total number of failed rollover invocations by failing step",
	}, []string{"step"})

	rolloverDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "betgenius_rollover_duration_seconds",
		Help:    "Duration of a full rollover invocation",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	})

	dashboardFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "betgenius_dashboard_fetch_errors_total",
		Help: "Total number of failed dashboard fetches",
	}, []string{"fetch"})
)
