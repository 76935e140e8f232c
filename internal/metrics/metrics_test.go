// internal/metrics/metrics_test.go
package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/parkwatch/internal/actuator"
	"github.com/tamzrod/parkwatch/internal/occupancy"
	"github.com/tamzrod/parkwatch/internal/poller"
)

func TestPublish_RecordsCycle(t *testing.T) {
	m := New()

	r := poller.Report{
		Trigger:  poller.TriggerTimer,
		Duration: 80 * time.Millisecond,
		Readings: []poller.ChannelReading{
			{Channel: "distance-lot1", OK: true},
			{Channel: "infrared-lot1", OK: false},
		},
		Bays: []occupancy.BayStatus{
			{ID: "lot1", State: occupancy.Free},
			{ID: "lot2", State: occupancy.Occupied},
		},
		Zone:     occupancy.ZoneStatus{ID: "nopark", Violated: true},
		Actuator: poller.ActuatorReport{Action: actuator.Issued, Command: actuator.On},
	}

	require.NoError(t, m.Publish(context.Background(), r))
	require.NoError(t, m.Publish(context.Background(), r))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cycles.WithLabelValues("timer")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.channelFailures.WithLabelValues("infrared-lot1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.actuatorActions.WithLabelValues("issued")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bayFree.WithLabelValues("lot1")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.bayFree.WithLabelValues("lot2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.zoneViolated))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	require.NoError(t, m.Publish(context.Background(), poller.Report{Trigger: poller.TriggerManual}))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `parkwatch_cycles_total{trigger="manual"} 1`)
	assert.Contains(t, string(body), "parkwatch_zone_violated 0")
}
