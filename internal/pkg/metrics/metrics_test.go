//go:build unit

package metrics_test

import (
	"testing"

	"dorm-services/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()

	m.ReservationCreated("ROOM_A", "confirmed")
	m.ReservationCreated("ROOM_A", "waitlist")
	m.ReservationCanceled(true)
	m.ReservationCanceled(false)
	m.ComplaintSubmitted("urgent")

	n, err := testutil.GatherAndCount(m.Registry(), "dorm_reservations_created_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(m.Registry(), "dorm_complaints_submitted_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ReservationCreated("ROOM_A", "confirmed")
		m.ReservationCanceled(true)
		m.ComplaintSubmitted("normal")
		m.PublishFailed()
		m.ObserveRequest("GET", "/health", "200", 0.01)
	})
}
