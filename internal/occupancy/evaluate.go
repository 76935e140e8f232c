// internal/occupancy/evaluate.go
package occupancy

import (
	"github.com/tamzrod/parkwatch/internal/sensor"
)

// DefaultThreshold is the distance boundary between free and occupied.
const DefaultThreshold = 30

// BayFree reports whether a bay is free.
// Both readings must be present: distance above threshold, infrared at 1.
func BayFree(distance, infrared sensor.ReadResult, threshold float64) bool {
	return distance.OK() && distance.Value > threshold &&
		infrared.OK() && infrared.Value == 1
}

// ZoneViolated reports whether the restricted zone is occupied.
// Either condition alone is enough; missing readings never trigger it.
func ZoneViolated(distance, infrared sensor.ReadResult, threshold float64) bool {
	return (distance.OK() && distance.Value < threshold) ||
		(infrared.OK() && infrared.Value == 0)
}

// Evaluate maps one cycle of readings to bay and zone states.
// Channels absent from readings count as failed reads.
func Evaluate(layout Layout, threshold float64, readings map[string]sensor.ReadResult) Evaluation {
	ev := Evaluation{Bays: make([]BayStatus, 0, len(layout.Bays))}

	for _, b := range layout.Bays {
		d := readings[b.Distance.Name]
		ir := readings[b.Infrared.Name]

		st := Occupied
		if BayFree(d, ir, threshold) {
			st = Free
		}

		ev.Bays = append(ev.Bays, BayStatus{
			ID:       b.ID,
			Name:     b.Name,
			State:    st,
			Distance: valueOf(d),
			Infrared: valueOf(ir),
			Degraded: !d.OK() || !ir.OK(),
		})
	}

	zd := readings[layout.Zone.Distance.Name]
	zir := readings[layout.Zone.Infrared.Name]
	ev.Zone = ZoneStatus{
		ID:       layout.Zone.ID,
		Name:     layout.Zone.Name,
		Violated: ZoneViolated(zd, zir, threshold),
		Distance: valueOf(zd),
		Infrared: valueOf(zir),
		Degraded: !zd.OK() || !zir.OK(),
	}

	return ev
}

func valueOf(r sensor.ReadResult) *float64 {
	if !r.OK() {
		return nil
	}
	v := r.Value
	return &v
}
