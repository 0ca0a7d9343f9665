package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initiations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "givehub_donation_initiations_total",
		Help: "Donation initiations by provider and outcome.",
	}, []string{"provider", "outcome"})

	captures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "givehub_donation_captures_total",
		Help: "Capture attempts by outcome.",
	}, []string{"outcome"})

	stateQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "givehub_donation_state_queries_total",
		Help: "Wallet state queries by outcome.",
	}, []string{"outcome"})
)

func RecordInitiation(provider string, outcome string) {
	initiations.WithLabelValues(provider, outcome).Inc()
}

func RecordCapture(outcome string) {
	captures.WithLabelValues(outcome).Inc()
}

func RecordStateQuery(outcome string) {
	stateQueries.WithLabelValues(outcome).Inc()
}
