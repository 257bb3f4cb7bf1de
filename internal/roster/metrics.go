package roster

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mergington"

// The activity label is bounded by the fixed seed set, so cardinality
// stays small.
var (
	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "signups_total",
			Help:      "Total signup attempts by activity and outcome",
		},
		[]string{"activity", "outcome"},
	)

	unregistersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "unregisters_total",
			Help:      "Total unregister attempts by activity and outcome",
		},
		[]string{"activity", "outcome"},
	)
)

func recordSignup(activity, outcome string) {
	signupsTotal.WithLabelValues(activity, outcome).Inc()
}

func recordUnregister(activity, outcome string) {
	unregistersTotal.WithLabelValues(activity, outcome).Inc()
}
