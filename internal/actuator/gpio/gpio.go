// internal/actuator/gpio/gpio.go

// Package gpio drives the indicator output from a local GPIO pin.
// The periph.io backend is only built for Linux ARM boards; everywhere
// else (or with the "disablegpio" tag) New fails.
package gpio

import (
	"context"

	"github.com/tamzrod/parkwatch/internal/actuator"
)

// pin is the minimal output contract of a GPIO line.
type pin interface {
	set(high bool) error
}

// Driver implements actuator.Driver on a GPIO pin. On means high.
type Driver struct {
	name string
	p    pin
}

func (d *Driver) Write(_ context.Context, cmd actuator.Command) error {
	return d.p.set(cmd == actuator.On)
}

// Name returns the pin name the driver was built with.
func (d *Driver) Name() string { return d.name }
