// internal/actuator/gpio/gpio_test.go
package gpio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/parkwatch/internal/actuator"
)

type fakePin struct {
	levels []bool
	err    error
}

func (f *fakePin) set(high bool) error {
	if f.err != nil {
		return f.err
	}
	f.levels = append(f.levels, high)
	return nil
}

func TestDriver_MapsCommandToLevel(t *testing.T) {
	p := &fakePin{}
	d := &Driver{name: "GPIO17", p: p}

	require.NoError(t, d.Write(context.Background(), actuator.On))
	require.NoError(t, d.Write(context.Background(), actuator.Off))

	assert.Equal(t, []bool{true, false}, p.levels)
	assert.Equal(t, "GPIO17", d.Name())
}

func TestDriver_PropagatesPinError(t *testing.T) {
	d := &Driver{name: "GPIO17", p: &fakePin{err: errors.New("busy")}}
	assert.Error(t, d.Write(context.Background(), actuator.On))
}
