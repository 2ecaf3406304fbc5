package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mealplanner_client",
			Name:      "conversation_messages_total",
			Help:      "Completed request/reply exchanges with the completion endpoint.",
		},
	)

	completionFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mealplanner_client",
			Name:      "completion_failures_total",
			Help:      "Completion calls that returned an error of any class.",
		},
	)
)
