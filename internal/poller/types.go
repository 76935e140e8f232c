// internal/poller/types.go
package poller

import (
	"context"
	"time"

	"github.com/tamzrod/parkwatch/internal/actuator"
	"github.com/tamzrod/parkwatch/internal/occupancy"
	"github.com/tamzrod/parkwatch/internal/sensor"
)

// Reader reads every channel of one cycle. Failures live in the results.
type Reader interface {
	ReadAll(ctx context.Context, chans []sensor.Channel) map[string]sensor.ReadResult
}

// Actuator applies the desired output level, debounced.
type Actuator interface {
	Apply(ctx context.Context, desired actuator.Command) actuator.Outcome
}

// Sink receives every finished cycle report.
// A sink error is logged and never stops the loop.
type Sink interface {
	Name() string
	Publish(ctx context.Context, r Report) error
}

// Trigger names what started a cycle.
type Trigger string

const (
	TriggerStartup Trigger = "startup"
	TriggerTimer   Trigger = "timer"
	TriggerManual  Trigger = "manual"
)

// State is the loop state.
type State int32

const (
	Idle State = iota
	Polling
)

func (s State) String() string {
	if s == Polling {
		return "polling"
	}
	return "idle"
}

// ChannelReading is the reportable form of one sensor.ReadResult.
type ChannelReading struct {
	Channel string   `json:"channel"`
	Param   string   `json:"param"`
	OK      bool     `json:"ok"`
	Value   *float64 `json:"value"`
	Error   string   `json:"error,omitempty"`
	Raw     string   `json:"raw,omitempty"`
}

// ActuatorReport is the reportable form of an actuator.Outcome.
type ActuatorReport struct {
	Action  actuator.Action  `json:"action"`
	Command actuator.Command `json:"command"`
	Error   string           `json:"error,omitempty"`
}

// Report is produced by one poll cycle.
type Report struct {
	ID         string                `json:"id"`
	Trigger    Trigger               `json:"trigger"`
	StartedAt  time.Time             `json:"started_at"`
	Duration   time.Duration         `json:"-"`
	DurationMs int64                 `json:"duration_ms"`
	Readings   []ChannelReading      `json:"readings"`
	Bays       []occupancy.BayStatus `json:"bays"`
	Zone       occupancy.ZoneStatus  `json:"zone"`
	Actuator   ActuatorReport        `json:"actuator"`
}

// FailedChannels counts readings that did not produce a value.
func (r Report) FailedChannels() int {
	n := 0
	for _, rd := range r.Readings {
		if !rd.OK {
			n++
		}
	}
	return n
}

// FreeBays counts bays evaluated as free.
func (r Report) FreeBays() int {
	n := 0
	for _, b := range r.Bays {
		if b.State == occupancy.Free {
			n++
		}
	}
	return n
}
