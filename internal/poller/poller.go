// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/parkwatch/internal/actuator"
	"github.com/tamzrod/parkwatch/internal/occupancy"
)

// sinkTimeout bounds one sink publication.
const sinkTimeout = 5 * time.Second

// MaxInterval is the longest accepted tick interval.
const MaxInterval = 24 * time.Hour

// Config is the minimal runtime config the poller needs.
type Config struct {
	Layout    occupancy.Layout
	Threshold float64
	Interval  time.Duration
}

// Poller runs read → evaluate → actuate cycles, one at a time.
type Poller struct {
	cfg    Config
	reader Reader
	act    Actuator
	sinks  []Sink
	log    *slog.Logger

	state    atomic.Int32
	interval atomic.Int64

	// 1-slot queues: pending requests coalesce.
	trigger     chan struct{}
	reconfigure chan struct{}

	mu        sync.RWMutex
	latest    Report
	hasLatest bool

	now func() time.Time
}

// New creates a poller. Sinks may be empty.
func New(cfg Config, reader Reader, act Actuator, sinks []Sink, log *slog.Logger) (*Poller, error) {
	if reader == nil {
		return nil, errors.New("poller: reader required")
	}
	if act == nil {
		return nil, errors.New("poller: actuator required")
	}
	if cfg.Interval <= 0 || cfg.Interval > MaxInterval {
		return nil, fmt.Errorf("poller: interval %v out of range (0, %v]", cfg.Interval, MaxInterval)
	}
	if len(cfg.Layout.Bays) == 0 {
		return nil, errors.New("poller: at least one bay required")
	}
	if log == nil {
		log = slog.Default()
	}

	p := &Poller{
		cfg:         cfg,
		reader:      reader,
		act:         act,
		sinks:       sinks,
		log:         log.With(slog.String("component", "poller")),
		trigger:     make(chan struct{}, 1),
		reconfigure: make(chan struct{}, 1),
		now:         time.Now,
	}
	p.interval.Store(int64(cfg.Interval))
	return p, nil
}

// PollOnce performs exactly one cycle and returns its report.
// Reads finish before evaluation; evaluation finishes before the
// actuator decision.
func (p *Poller) PollOnce(ctx context.Context, trig Trigger) Report {
	started := p.now()
	chans := p.cfg.Layout.Channels()

	readings := p.reader.ReadAll(ctx, chans)

	ev := occupancy.Evaluate(p.cfg.Layout, p.cfg.Threshold, readings)

	out := p.act.Apply(ctx, actuator.CommandFor(ev.Zone.Violated))

	rep := Report{
		ID:        uuid.NewString(),
		Trigger:   trig,
		StartedAt: started,
		Readings:  make([]ChannelReading, 0, len(chans)),
		Bays:      ev.Bays,
		Zone:      ev.Zone,
		Actuator: ActuatorReport{
			Action:  out.Action,
			Command: out.Command,
			Error:   out.Reason(),
		},
	}

	for _, ch := range chans {
		r := readings[ch.Name]
		cr := ChannelReading{
			Channel: ch.Name,
			Param:   ch.Param,
			OK:      r.OK(),
			Error:   r.Reason(),
			Raw:     r.Raw,
		}
		if r.OK() {
			v := r.Value
			cr.Value = &v
		}
		rep.Readings = append(rep.Readings, cr)
	}

	rep.Duration = p.now().Sub(started)
	rep.DurationMs = rep.Duration.Milliseconds()
	return rep
}

// Latest returns the most recent report, if any cycle has completed.
func (p *Poller) Latest() (Report, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, p.hasLatest
}

// State reports whether a cycle is in flight.
func (p *Poller) State() State {
	return State(p.state.Load())
}

// Interval returns the currently requested tick interval.
func (p *Poller) Interval() time.Duration {
	return time.Duration(p.interval.Load())
}

// Trigger requests an immediate cycle. It never blocks.
// It returns false when a request is already pending; the two coalesce.
func (p *Poller) Trigger() bool {
	select {
	case p.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// SetInterval changes the tick interval. It takes effect for the next
// scheduled tick and never interrupts a running cycle.
func (p *Poller) SetInterval(d time.Duration) error {
	if d <= 0 || d > MaxInterval {
		return fmt.Errorf("poller: interval %v out of range (0, %v]", d, MaxInterval)
	}
	p.interval.Store(int64(d))
	select {
	case p.reconfigure <- struct{}{}:
	default:
	}
	return nil
}

// cycle runs one full cycle and emits its report.
func (p *Poller) cycle(ctx context.Context, trig Trigger) Report {
	p.state.Store(int32(Polling))
	defer p.state.Store(int32(Idle))

	rep := p.PollOnce(ctx, trig)

	p.mu.Lock()
	p.latest = rep
	p.hasLatest = true
	p.mu.Unlock()

	p.logReport(rep)

	for _, s := range p.sinks {
		sctx, cancel := context.WithTimeout(ctx, sinkTimeout)
		if err := s.Publish(sctx, rep); err != nil {
			p.log.Warn("sink publish failed", "sink", s.Name(), "cycle", rep.ID, "error", err)
		}
		cancel()
	}

	return rep
}

func (p *Poller) logReport(rep Report) {
	for _, rd := range rep.Readings {
		if !rd.OK {
			p.log.Warn("channel failed", "cycle", rep.ID, "channel", rd.Channel, "error", rd.Error)
		}
	}

	p.log.Info("cycle done",
		"cycle", rep.ID,
		"trigger", string(rep.Trigger),
		"duration_ms", rep.DurationMs,
		"free", rep.FreeBays(),
		"bays", len(rep.Bays),
		"violated", rep.Zone.Violated,
		"actuator", string(rep.Actuator.Action),
		"command", rep.Actuator.Command.String(),
		"failed_channels", rep.FailedChannels(),
	)
}
