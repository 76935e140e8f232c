// internal/mirror/mirror.go
package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tamzrod/parkwatch/internal/actuator"
	"github.com/tamzrod/parkwatch/internal/occupancy"
	"github.com/tamzrod/parkwatch/internal/poller"
	"github.com/tamzrod/parkwatch/internal/status"
)

// endpointClient is the only thing the mirror needs from a Modbus endpoint.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// Config selects the status block on the endpoint.
type Config struct {
	UnitID   uint8
	BaseSlot uint16
}

// Mirror delivers cycle reports into a holding-register status block.
// It writes the full block on first use and after any failure,
// otherwise only the slots that changed.
type Mirror struct {
	cfg Config
	cli endpointClient

	mu        sync.Mutex
	needFull  bool
	last      status.Snapshot
	lastIssue uint16
}

// New builds a mirror over an endpoint client.
func New(cfg Config, cli endpointClient) (*Mirror, error) {
	if cli == nil {
		return nil, errors.New("mirror: endpoint client required")
	}
	if int(cfg.BaseSlot)*status.SlotsPerBlock+status.SlotsPerBlock > 65536 {
		return nil, fmt.Errorf("mirror: base slot %d out of range", cfg.BaseSlot)
	}
	return &Mirror{
		cfg:       cfg,
		cli:       cli,
		needFull:  true,
		lastIssue: status.ActuatorUnset,
	}, nil
}

func (m *Mirror) Name() string { return "mirror" }

// Publish implements poller.Sink.
func (m *Mirror) Publish(_ context.Context, r poller.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.write(m.snapshot(r))
}

// snapshot maps a report onto register codes.
// The actuator slot follows the last command that reached the device.
func (m *Mirror) snapshot(r poller.Report) status.Snapshot {
	if r.Actuator.Action != actuator.Failed {
		m.lastIssue = actuatorCode(r.Actuator.Command)
	}

	s := status.Snapshot{
		Health:         healthCode(len(r.Readings), r.FailedChannels()),
		Actuator:       m.lastIssue,
		FailedChannels: status.Saturate(int64(r.FailedChannels())),
		CycleMillis:    status.Saturate(r.DurationMs),
		Bays:           make([]uint16, 0, len(r.Bays)),
	}
	if r.Zone.Violated {
		s.Violation = 1
	}
	for _, b := range r.Bays {
		s.Bays = append(s.Bays, bayCode(b.State))
	}
	return s
}

func (m *Mirror) write(s status.Snapshot) error {
	base := m.cfg.BaseSlot * status.SlotsPerBlock
	regs := status.Encode(s)

	if m.needFull {
		if err := m.cli.WriteRegisters(m.cfg.UnitID, base, regs); err != nil {
			m.needFull = true
			return fmt.Errorf("mirror: full block write failed: %w", err)
		}
		m.needFull = false
		m.last = s
		return nil
	}

	prev := status.Encode(m.last)

	var errs []string
	for slot := range regs {
		if regs[slot] == prev[slot] {
			continue
		}
		if err := m.cli.WriteRegisters(m.cfg.UnitID, base+uint16(slot), regs[slot:slot+1]); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d write failed: %v", slot, err))
		}
	}

	if len(errs) > 0 {
		// Partial writes leave the block in doubt; re-assert on next success.
		m.needFull = true
		return errors.New("mirror: " + strings.Join(errs, " | "))
	}

	m.last = s
	return nil
}

func healthCode(total, failed int) uint16 {
	switch {
	case total == 0:
		return status.HealthUnknown
	case failed == 0:
		return status.HealthOK
	case failed >= total:
		return status.HealthError
	default:
		return status.HealthDegraded
	}
}

func actuatorCode(c actuator.Command) uint16 {
	if c == actuator.On {
		return status.ActuatorOn
	}
	return status.ActuatorOff
}

func bayCode(s occupancy.BayState) uint16 {
	switch s {
	case occupancy.Free:
		return status.BayFree
	case occupancy.Occupied:
		return status.BayOccupied
	default:
		return status.BayUnknown
	}
}
