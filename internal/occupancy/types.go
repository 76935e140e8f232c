// internal/occupancy/types.go
package occupancy

import (
	"fmt"

	"github.com/tamzrod/parkwatch/internal/sensor"
)

// BayState is the derived state of one bay.
type BayState uint8

const (
	// Unknown means the bay has not been evaluated yet.
	Unknown BayState = iota
	Free
	Occupied
)

func (s BayState) String() string {
	switch s {
	case Free:
		return "free"
	case Occupied:
		return "occupied"
	default:
		return "unknown"
	}
}

func (s BayState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BayState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "free":
		*s = Free
	case "occupied":
		*s = Occupied
	case "unknown", "":
		*s = Unknown
	default:
		return fmt.Errorf("occupancy: unknown bay state %q", string(b))
	}
	return nil
}

// Bay is one monitored parking bay and its channel pair.
type Bay struct {
	ID       string
	Name     string
	Distance sensor.Channel
	Infrared sensor.Channel
}

// Zone is the restricted area watched for violations.
type Zone struct {
	ID       string
	Name     string
	Distance sensor.Channel
	Infrared sensor.Channel
}

// Layout is the full set of monitored areas.
type Layout struct {
	Bays []Bay
	Zone Zone
}

// Channels lists every channel the layout reads, bays first.
func (l Layout) Channels() []sensor.Channel {
	out := make([]sensor.Channel, 0, 2*len(l.Bays)+2)
	for _, b := range l.Bays {
		out = append(out, b.Distance, b.Infrared)
	}
	return append(out, l.Zone.Distance, l.Zone.Infrared)
}

// BayStatus is the per-cycle result for one bay.
// Distance and Infrared are nil when the read failed.
type BayStatus struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	State    BayState `json:"state"`
	Distance *float64 `json:"distance"`
	Infrared *float64 `json:"infrared"`
	Degraded bool     `json:"degraded"`
}

// ZoneStatus is the per-cycle result for the restricted zone.
type ZoneStatus struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Violated bool     `json:"violated"`
	Distance *float64 `json:"distance"`
	Infrared *float64 `json:"infrared"`
	Degraded bool     `json:"degraded"`
}

// Evaluation is everything derived from one set of readings.
type Evaluation struct {
	Bays []BayStatus `json:"bays"`
	Zone ZoneStatus  `json:"zone"`
}

// FreeCount returns the number of free bays.
func (e Evaluation) FreeCount() int {
	n := 0
	for _, b := range e.Bays {
		if b.State == Free {
			n++
		}
	}
	return n
}
