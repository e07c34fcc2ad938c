// Package metrics provides Prometheus metrics for the suggestion service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts suggestion requests by outcome kind ("ok" on success).
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giftsuggest",
			Name:      "requests_total",
			Help:      "Total number of gift suggestion requests by outcome",
		},
		[]string{"kind"},
	)

	// GenerationDuration tracks how long the outbound model call took.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "giftsuggest",
			Name:      "generation_duration_seconds",
			Help:      "Duration of generation backend calls in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 15, 20, 25, 30},
		},
		[]string{"provider", "outcome"},
	)

	// GenerationTokens counts tokens reported by the backend.
	GenerationTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giftsuggest",
			Name:      "generation_tokens_total",
			Help:      "Total tokens consumed by generation backend calls",
		},
		[]string{"provider"},
	)

	// HistoryDegradedTotal counts calls that continued without gift history.
	HistoryDegradedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "giftsuggest",
			Name:      "history_degraded_total",
			Help:      "Total number of requests that proceeded without gift history",
		},
	)
)

// ObserveGeneration records one backend call.
func ObserveGeneration(provider, outcome string, elapsed time.Duration) {
	GenerationDuration.WithLabelValues(provider, outcome).Observe(elapsed.Seconds())
}
