// internal/poller/builder.go
package poller

import (
	"log/slog"
	"time"

	cfg "github.com/tamzrod/parkwatch/internal/config"
	"github.com/tamzrod/parkwatch/internal/occupancy"
	"github.com/tamzrod/parkwatch/internal/sensor"
)

// Channel name prefixes; names are "<kind>-<bay or zone id>".
const (
	kindDistance = "distance"
	kindInfrared = "infrared"
)

// LayoutFrom converts the configured bays and zone into a layout.
// Assumes config has already passed validation.
func LayoutFrom(c cfg.Config) occupancy.Layout {
	l := occupancy.Layout{Bays: make([]occupancy.Bay, 0, len(c.Bays))}

	for _, b := range c.Bays {
		l.Bays = append(l.Bays, occupancy.Bay{
			ID:       b.ID,
			Name:     b.Name,
			Distance: sensor.Channel{Name: kindDistance + "-" + b.ID, Param: b.Distance},
			Infrared: sensor.Channel{Name: kindInfrared + "-" + b.ID, Param: b.Infrared},
		})
	}

	l.Zone = occupancy.Zone{
		ID:       c.Zone.ID,
		Name:     c.Zone.Name,
		Distance: sensor.Channel{Name: kindDistance + "-" + c.Zone.ID, Param: c.Zone.Distance},
		Infrared: sensor.Channel{Name: kindInfrared + "-" + c.Zone.ID, Param: c.Zone.Infrared},
	}

	return l
}

// Build constructs a Poller from configuration and its collaborators.
// No retries, no loops, no semantics.
func Build(c cfg.Config, reader Reader, act Actuator, sinks []Sink, log *slog.Logger) (*Poller, error) {
	return New(
		Config{
			Layout:    LayoutFrom(c),
			Threshold: c.Poll.Threshold,
			Interval:  time.Duration(c.Poll.IntervalMs) * time.Millisecond,
		},
		reader,
		act,
		sinks,
		log,
	)
}
