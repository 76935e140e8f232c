// internal/sensor/types.go
package sensor

import (
	"fmt"
)

// Channel identifies one logical input on the remote API.
type Channel struct {
	Name  string // logical id, e.g. "distance-bay1"
	Param string // remote parameter, e.g. "Distance1"
}

// ReadResult is the outcome of one channel read.
// Build it with Success or Failure; the zero value is a failure.
type ReadResult struct {
	Channel string
	Value   float64
	Err     error
	Raw     string

	ok bool
}

// MaxRawLen caps the raw body kept on a result.
const MaxRawLen = 256

func Success(channel string, value float64, raw string) ReadResult {
	return ReadResult{Channel: channel, Value: value, Raw: clip(raw), ok: true}
}

func Failure(channel string, err error, raw string) ReadResult {
	if err == nil {
		err = errNoReading
	}
	return ReadResult{Channel: channel, Err: err, Raw: clip(raw)}
}

// OK reports whether the read produced a value.
func (r ReadResult) OK() bool { return r.ok }

// Reason describes why the read failed. Empty on success.
func (r ReadResult) Reason() string {
	if r.ok {
		return ""
	}
	if r.Err == nil {
		return errNoReading.Error()
	}
	return r.Err.Error()
}

// TransportError covers dial errors, timeouts and non-2xx statuses.
type TransportError struct {
	Channel string
	Status  int // 0 when no response was received
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("sensor %s: http status %d", e.Channel, e.Status)
	}
	return fmt.Sprintf("sensor %s: %v", e.Channel, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func clip(s string) string {
	if len(s) > MaxRawLen {
		return s[:MaxRawLen]
	}
	return s
}
