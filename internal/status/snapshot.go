// internal/status/snapshot.go
package status

// Snapshot represents exactly what the mirror is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	Violation      uint16
	Actuator       uint16
	FailedChannels uint16
	CycleMillis    uint16
	Bays           []uint16 // one code per bay, in layout order
}
