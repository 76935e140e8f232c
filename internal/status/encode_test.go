// internal/status/encode_test.go
package status

import "testing"

func TestEncode_Layout(t *testing.T) {
	regs := Encode(Snapshot{
		Health:         HealthDegraded,
		Violation:      1,
		Actuator:       ActuatorOn,
		FailedChannels: 2,
		CycleMillis:    140,
		Bays:           []uint16{BayFree, BayOccupied},
	})

	if len(regs) != SlotsPerBlock {
		t.Fatalf("expected %d regs, got %d", SlotsPerBlock, len(regs))
	}

	want := map[int]uint16{
		SlotHealth:         HealthDegraded,
		SlotViolation:      1,
		SlotActuator:       ActuatorOn,
		SlotFailedChannels: 2,
		SlotCycleMillis:    140,
		SlotBayStart:       BayFree,
		SlotBayStart + 1:   BayOccupied,
		SlotBayStart + 2:   BayUnknown,
	}
	for slot, v := range want {
		if regs[slot] != v {
			t.Fatalf("slot %d: got=%d want=%d", slot, regs[slot], v)
		}
	}
}

func TestEncode_DropsBaysBeyondBlock(t *testing.T) {
	bays := make([]uint16, MaxBays+3)
	for i := range bays {
		bays[i] = BayOccupied
	}
	regs := Encode(Snapshot{Bays: bays})
	if len(regs) != SlotsPerBlock {
		t.Fatalf("block grew to %d regs", len(regs))
	}
}

func TestSaturate(t *testing.T) {
	if Saturate(-5) != 0 || Saturate(70000) != 65535 || Saturate(12) != 12 {
		t.Fatalf("saturate out of range")
	}
}
