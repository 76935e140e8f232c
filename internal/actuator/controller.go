// internal/actuator/controller.go
package actuator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Command is the desired level of the single binary output.
type Command uint8

const (
	Off Command = iota
	On
)

func (c Command) String() string {
	if c == On {
		return "on"
	}
	return "off"
}

func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// CommandFor maps the zone violation flag to the output level.
func CommandFor(violated bool) Command {
	if violated {
		return On
	}
	return Off
}

// Action tells what Apply did.
type Action string

const (
	Skipped Action = "skipped"
	Issued  Action = "issued"
	Failed  Action = "failed"
)

// Outcome is the result of one Apply call.
type Outcome struct {
	Action  Action  `json:"action"`
	Command Command `json:"command"`
	Err     error   `json:"-"`
}

// Reason is the failure text, empty unless Action is Failed.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Error is a failed actuator write.
type Error struct {
	Command Command
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("actuator: write %s: %v", e.Command, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Driver performs the physical write. One call = one write attempt.
type Driver interface {
	Write(ctx context.Context, cmd Command) error
}

// Controller debounces commands: a write happens only when the desired
// level differs from the last successfully issued one.
// lastIssued starts unset, so the first Apply always writes.
type Controller struct {
	driver Driver
	log    *slog.Logger

	mu     sync.Mutex
	last   Command
	issued bool
}

func NewController(driver Driver, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		driver: driver,
		log:    log.With(slog.String("component", "actuator")),
	}
}

// Apply drives the output towards desired.
// A failed write leaves lastIssued untouched so the next cycle retries.
// The lock is not held across the write; callers serialize Apply.
func (c *Controller) Apply(ctx context.Context, desired Command) Outcome {
	c.mu.Lock()
	last, issued := c.last, c.issued
	c.mu.Unlock()

	if issued && last == desired {
		return Outcome{Action: Skipped, Command: desired}
	}

	if err := c.driver.Write(ctx, desired); err != nil {
		aerr := &Error{Command: desired, Err: err}
		c.log.Error("actuator write failed", "command", desired.String(), "error", err)
		return Outcome{Action: Failed, Command: desired, Err: aerr}
	}

	c.mu.Lock()
	c.last = desired
	c.issued = true
	c.mu.Unlock()

	prev := "unset"
	if issued {
		prev = last.String()
	}
	c.log.Info("actuator switched", "from", prev, "to", desired.String())

	return Outcome{Action: Issued, Command: desired}
}

// Last returns the last successfully issued command.
// ok is false until the first successful write.
func (c *Controller) Last() (cmd Command, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.issued
}
