// internal/status/constants.go
package status

// Status block layout constants.
// These values define the register map read by PLC/SCADA clients and
// MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBlock is the fixed number of holding registers in one block.
const SlotsPerBlock = 20

// ---- SLOT INDICES ----

// SlotHealth holds the cycle health code.
const SlotHealth = 0

// SlotViolation holds 1 while the restricted zone is violated.
const SlotViolation = 1

// SlotActuator holds the last successfully issued actuator command.
const SlotActuator = 2

// SlotFailedChannels holds the number of failed channel reads.
const SlotFailedChannels = 3

// SlotCycleMillis holds the last cycle duration in milliseconds (saturating).
const SlotCycleMillis = 4

// ---- BAY STATES ----

// SlotBayStart is the first per-bay slot. Bays fill the rest of the block.
const SlotBayStart = 5

// MaxBays is the number of bays the block can carry.
const MaxBays = SlotsPerBlock - SlotBayStart

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state before the first cycle.
const HealthUnknown uint16 = 0

// HealthOK means every channel was read.
const HealthOK uint16 = 1

// HealthDegraded means some channels failed.
const HealthDegraded uint16 = 2

// HealthError means every channel failed.
const HealthError uint16 = 3

// ---- ACTUATOR CODES ----

const (
	ActuatorUnset uint16 = 0
	ActuatorOff   uint16 = 1
	ActuatorOn    uint16 = 2
)

// ---- BAY CODES ----

const (
	BayUnknown  uint16 = 0
	BayFree     uint16 = 1
	BayOccupied uint16 = 2
)
