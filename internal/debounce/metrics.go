package debounce

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scheduledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mealplanner_client",
			Name:      "debounce_schedules_total",
			Help:      "Writes scheduled, including ones later coalesced.",
		},
		[]string{"target"},
	)

	coalescedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mealplanner_client",
			Name:      "debounce_coalesced_total",
			Help:      "Pending writes replaced by a newer schedule.",
		},
		[]string{"target"},
	)

	cancelledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mealplanner_client",
			Name:      "debounce_cancelled_total",
			Help:      "Pending writes discarded by teardown.",
		},
		[]string{"target"},
	)

	writesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mealplanner_client",
			Name:      "debounce_writes_total",
			Help:      "Fired writes that reached the remote store.",
		},
		[]string{"target"},
	)

	failedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mealplanner_client",
			Name:      "debounce_write_failures_total",
			Help:      "Fired writes that gave up after retries.",
		},
		[]string{"target"},
	)
)
