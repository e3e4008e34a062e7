// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_generation_attempts_total",
			Help: "Total outfit generation attempts by result",
		},
		[]string{"result"}, // success | fallback | precondition | in_flight
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "outfit_generation_duration_seconds",
			Help: "Duration of outfit generation calls in seconds",
		},
	)

	CacheReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_cache_reads_total",
			Help: "Daily outfit cache reads by result",
		},
		[]string{"result"}, // hit | miss | ownership_discard | unusable | corrupt
	)

	WearTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_wear_transitions_total",
			Help: "Wear-state transitions by result",
		},
		[]string{"result"}, // worn | noop | failed | not_found
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_worn_events_published_total",
			Help: "Outfit-worn events published on the internal bus",
		},
		[]string{"force_fresh"},
	)

	DashboardSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_source_failures_total",
			Help: "Dashboard aggregation source failures",
		},
		[]string{"source"},
	)
)
