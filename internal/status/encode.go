// internal/status/encode.go
package status

// Encode converts a Snapshot into a full status block.
// Layout is protocol-locked; bays beyond MaxBays are dropped.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerBlock)

	regs[SlotHealth] = s.Health
	regs[SlotViolation] = s.Violation
	regs[SlotActuator] = s.Actuator
	regs[SlotFailedChannels] = s.FailedChannels
	regs[SlotCycleMillis] = s.CycleMillis

	for i, b := range s.Bays {
		if i >= MaxBays {
			break
		}
		regs[SlotBayStart+i] = b
	}

	return regs
}

// Saturate clamps n into a register.
func Saturate(n int64) uint16 {
	if n < 0 {
		return 0
	}
	if n > 65535 {
		return 65535
	}
	return uint16(n)
}
