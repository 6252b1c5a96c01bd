package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts fulfillment outcomes. All methods are safe on a nil
// receiver so wiring metrics stays optional in tests.
type Metrics struct {
	checkoutsAccepted prometheus.Counter
	checkoutsRejected *prometheus.CounterVec
	transitions       *prometheus.CounterVec
	claimConflicts    prometheus.Counter
}

func New() *Metrics {
	return newWithRegisterer(prometheus.DefaultRegisterer)
}

func newWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		checkoutsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_checkouts_accepted_total",
			Help: "Total number of checkouts committed",
		}),
		checkoutsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_checkouts_rejected_total",
			Help: "Total number of checkouts rejected, by reason",
		}, []string{"reason"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_status_transitions_total",
			Help: "Total number of committed order status transitions, by target status",
		}, []string{"status"}),
		claimConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_claim_conflicts_total",
			Help: "Total number of rider claims lost to the conditional update",
		}),
	}

	registerer.MustRegister(m.checkoutsAccepted, m.checkoutsRejected, m.transitions, m.claimConflicts)
	return m
}

func (m *Metrics) CheckoutAccepted() {
	if m == nil {
		return
	}
	m.checkoutsAccepted.Inc()
}

func (m *Metrics) CheckoutRejected(reason string) {
	if m == nil {
		return
	}
	m.checkoutsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) TransitionApplied(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

func (m *Metrics) ClaimConflict() {
	if m == nil {
		return
	}
	m.claimConflicts.Inc()
}
