package identity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mergington"

var (
	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "logins_total",
			Help:      "Total login attempts by outcome",
		},
		[]string{"outcome"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "sessions_active",
			Help:      "Number of active session tokens",
		},
	)
)

// recordLogin records a login attempt outcome.
func recordLogin(outcome string) {
	loginsTotal.WithLabelValues(outcome).Inc()
}

// setActiveSessions updates the active sessions gauge.
func setActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
