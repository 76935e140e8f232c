// internal/actuator/coil.go
package actuator

import (
	"context"
	"errors"
)

// coilWriter is the part of the Modbus endpoint client the coil driver uses.
type coilWriter interface {
	WriteCoil(unitID uint8, addr uint16, on bool) error
}

// CoilDriver switches the output through a single Modbus coil.
type CoilDriver struct {
	cli    coilWriter
	unitID uint8
	coil   uint16
}

func NewCoilDriver(cli coilWriter, unitID uint8, coil uint16) (*CoilDriver, error) {
	if cli == nil {
		return nil, errors.New("coil driver: modbus client required")
	}
	return &CoilDriver{cli: cli, unitID: unitID, coil: coil}, nil
}

// Write ignores ctx: the Modbus handler enforces its own timeout.
func (d *CoilDriver) Write(_ context.Context, cmd Command) error {
	return d.cli.WriteCoil(d.unitID, d.coil, cmd == On)
}
