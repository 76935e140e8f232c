//go:build !(linux && (arm || arm64)) || disablegpio

// internal/actuator/gpio/gpio_stub.go
package gpio

import "fmt"

// New always fails on platforms without the periph backend.
func New(name string) (*Driver, error) {
	return nil, fmt.Errorf("gpio: pin %q: gpio output not supported on this build", name)
}
