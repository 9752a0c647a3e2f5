// ABOUTME: Tests for the metrics manager.
// ABOUTME: Checks registration and that collectors move on an isolated registry.
package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerRegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterRequests.WithLabelValues("GET", "/api/v1/sessions", "200").Inc()
	m.CounterHistoryErrors.Inc()
	m.GaugeRequests.Set(1)
	m.GaugeSessions.Set(12)
	m.HistRequestDuration.Observe(0.01)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"coach_test_requests_total",
		"coach_test_history_load_errors_total",
		"coach_test_current_requests",
		"coach_test_history_sessions",
		"coach_test_request_duration_seconds",
	} {
		assert.True(t, names[want], "missing %s", want)
	}
}

func TestCollectorValues(t *testing.T) {
	m := NewTestManager()
	m.CounterHistoryErrors.Add(2)
	m.GaugeSessions.Set(7)
	m.CounterRequests.WithLabelValues("GET", "/metrics", "200").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterHistoryErrors))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.GaugeSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "/metrics", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "/metrics", "500")))
}

func TestManagersDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTestManager()
		NewTestManager()
	})
}
