//go:build linux && (arm || arm64) && !disablegpio

// internal/actuator/gpio/gpio_rpi.go
package gpio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type periphPin struct {
	p gpio.PinIO
}

func (pp periphPin) set(high bool) error {
	lvl := gpio.Low
	if high {
		lvl = gpio.High
	}
	return pp.p.Out(lvl)
}

// New initialises the periph host and resolves the pin by name
// (e.g. "GPIO17"). The pin is driven low until the first command.
func New(name string) (*Driver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio: host init: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio: unknown pin %q", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("gpio: pin %s: %w", name, err)
	}
	return &Driver{name: name, p: periphPin{p: p}}, nil
}
