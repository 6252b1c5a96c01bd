package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCountersIncrement(t *testing.T) {
	m := newWithRegisterer(prometheus.NewRegistry())

	m.CheckoutAccepted()
	m.CheckoutAccepted()
	m.CheckoutRejected("insufficient_stock")
	m.TransitionApplied("in_transit")
	m.ClaimConflict()

	require.Equal(t, float64(2), testutil.ToFloat64(m.checkoutsAccepted))
	require.Equal(t, float64(1), testutil.ToFloat64(m.checkoutsRejected.WithLabelValues("insufficient_stock")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.transitions.WithLabelValues("in_transit")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.claimConflicts))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics

	require.NotPanics(t, func() {
		m.CheckoutAccepted()
		m.CheckoutRejected("validation")
		m.TransitionApplied("delivered")
		m.ClaimConflict()
	})
}
