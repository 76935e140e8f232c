// internal/occupancy/evaluate_test.go
package occupancy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/parkwatch/internal/sensor"
)

var errOffline = errors.New("offline")

func ok(v float64) sensor.ReadResult { return sensor.Success("ch", v, "") }
func fail() sensor.ReadResult        { return sensor.Failure("ch", errOffline, "") }

func TestBayFree_Table(t *testing.T) {
	cases := []struct {
		name     string
		distance sensor.ReadResult
		infrared sensor.ReadResult
		free     bool
	}{
		{"far and clear", ok(35), ok(1), true},
		{"close", ok(10), ok(1), false},
		{"at threshold", ok(30), ok(1), false},
		{"ir blocked", ok(35), ok(0), false},
		{"ir odd value", ok(35), ok(2), false},
		{"distance missing", fail(), ok(1), false},
		{"ir missing", ok(35), fail(), false},
		{"both missing", fail(), fail(), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.free, BayFree(tc.distance, tc.infrared, DefaultThreshold))
		})
	}
}

func TestZoneViolated_Table(t *testing.T) {
	cases := []struct {
		name     string
		distance sensor.ReadResult
		infrared sensor.ReadResult
		violated bool
	}{
		{"both missing is fail-safe", fail(), fail(), false},
		{"close only", ok(25), fail(), true},
		{"ir only", fail(), ok(0), true},
		{"both trigger", ok(5), ok(0), true},
		{"clear", ok(80), ok(1), false},
		{"at threshold", ok(30), ok(1), false},
		{"far, ir missing", ok(80), fail(), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.violated, ZoneViolated(tc.distance, tc.infrared, DefaultThreshold))
		})
	}
}

func testLayout() Layout {
	return Layout{
		Bays: []Bay{
			{
				ID:       "bay1",
				Name:     "Lot 1",
				Distance: sensor.Channel{Name: "distance-bay1", Param: "Distance1"},
				Infrared: sensor.Channel{Name: "infrared-bay1", Param: "D7"},
			},
			{
				ID:       "bay2",
				Name:     "Lot 2",
				Distance: sensor.Channel{Name: "distance-bay2", Param: "Distance2"},
				Infrared: sensor.Channel{Name: "infrared-bay2", Param: "D2"},
			},
		},
		Zone: Zone{
			ID:       "nopark",
			Distance: sensor.Channel{Name: "distance-nopark", Param: "DistanceX1"},
			Infrared: sensor.Channel{Name: "infrared-nopark", Param: "D4"},
		},
	}
}

func TestEvaluate_EndToEnd(t *testing.T) {
	readings := map[string]sensor.ReadResult{
		"distance-bay1":   sensor.Success("distance-bay1", 35, "35"),
		"infrared-bay1":   sensor.Success("infrared-bay1", 1, "1"),
		"distance-bay2":   sensor.Success("distance-bay2", 10, "10"),
		"infrared-bay2":   sensor.Success("infrared-bay2", 1, "1"),
		"distance-nopark": sensor.Success("distance-nopark", 25, "25"),
		"infrared-nopark": sensor.Failure("infrared-nopark", errOffline, ""),
	}

	ev := Evaluate(testLayout(), DefaultThreshold, readings)

	require.Len(t, ev.Bays, 2)
	assert.Equal(t, Free, ev.Bays[0].State)
	assert.False(t, ev.Bays[0].Degraded)
	require.NotNil(t, ev.Bays[0].Distance)
	assert.Equal(t, 35.0, *ev.Bays[0].Distance)

	assert.Equal(t, Occupied, ev.Bays[1].State)
	assert.Equal(t, 1, ev.FreeCount())

	assert.True(t, ev.Zone.Violated)
	assert.True(t, ev.Zone.Degraded)
	assert.Nil(t, ev.Zone.Infrared)
}

func TestEvaluate_MissingReadingsFailToOccupiedAndNotViolated(t *testing.T) {
	ev := Evaluate(testLayout(), DefaultThreshold, map[string]sensor.ReadResult{})

	for _, b := range ev.Bays {
		assert.Equal(t, Occupied, b.State, b.ID)
		assert.True(t, b.Degraded, b.ID)
	}
	assert.False(t, ev.Zone.Violated)
}

func TestEvaluate_Deterministic(t *testing.T) {
	readings := map[string]sensor.ReadResult{
		"distance-bay1": sensor.Success("distance-bay1", 50, ""),
		"infrared-bay1": sensor.Success("infrared-bay1", 1, ""),
	}
	a := Evaluate(testLayout(), DefaultThreshold, readings)
	b := Evaluate(testLayout(), DefaultThreshold, readings)
	assert.Equal(t, a, b)
}

func TestLayout_Channels(t *testing.T) {
	chans := testLayout().Channels()
	require.Len(t, chans, 6)
	assert.Equal(t, "distance-bay1", chans[0].Name)
	assert.Equal(t, "infrared-nopark", chans[5].Name)
}

func TestBayState_Text(t *testing.T) {
	b, err := Occupied.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "occupied", string(b))

	var s BayState
	require.NoError(t, s.UnmarshalText([]byte("free")))
	assert.Equal(t, Free, s)
	assert.Error(t, s.UnmarshalText([]byte("parked")))
}
