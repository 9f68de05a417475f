package entity

import "time"

// ZoneCount is the fixed zone capacity (§3.1).
const ZoneCount = 208

// ZoneInputState is the electrical input state of a zone, the low 2 bits
// of the packed ZC/ZS nibble (§3.3).
type ZoneInputState byte

const (
	ZoneUnconfigured ZoneInputState = iota
	ZoneOpen
	ZoneEOL
	ZoneShort
)

// ZoneStatus is the alarm-relevant status of a zone, bits 2-3 of the
// packed ZC/ZS nibble (§3.3).
type ZoneStatus byte

const (
	ZoneNormal ZoneStatus = iota
	ZoneTrouble
	ZoneViolated
	ZoneBypassed
)

// ZoneDefinition classifies what kind of input a zone is wired as,
// grounded on PyElk/Zone/__init__.py's DEFINITION_* table.
type ZoneDefinition byte

const (
	DefinitionDisabled ZoneDefinition = iota
	DefinitionBurglar1
	DefinitionBurglar2
	DefinitionBurglarPerimeterInstant
	DefinitionBurglarInterior
	DefinitionBurglarInteriorFollower
	DefinitionBurglarInteriorNight
	DefinitionBurglarInteriorNightDelay
	DefinitionBurglar24Hour
	DefinitionBurglarBoxTamper
	DefinitionFireAlarm
	DefinitionFireVerified
	DefinitionFireSupervisory
	DefinitionAuxAlarm1
	DefinitionAuxAlarm2
	DefinitionKeyfob
	DefinitionNonAlarm
	DefinitionCarbonMonoxide
	DefinitionEmergencyAlarm
	DefinitionFreezeAlarm
	DefinitionGasAlarm
	DefinitionHeatAlarm
	DefinitionMedicalAlarm
	DefinitionPoliceAlarm
	DefinitionPoliceNoIndication
	DefinitionWaterAlarm
	DefinitionKeyMomentaryArmDisarm
	DefinitionKeyMomentaryArmAway
	DefinitionKeyMomentaryArmStay
	DefinitionKeyMomentaryDisarm
	DefinitionKeyOnOff
	DefinitionMuteAudibles
	DefinitionPowerSupervisory
	DefinitionTemperature
	DefinitionAnalogZone
	DefinitionPhoneKey
	DefinitionIntercomKey
)

// Zone is a physical input reporting one of four electrical states
// (§3.3, glossary).
type Zone struct {
	Base

	Number int // 1-based wire-facing number

	State        ZoneInputState
	Status       ZoneStatus
	statusKnown  bool
	Definition   ZoneDefinition
	defKnown     bool
	Alarm        byte // raw fake-hex code from AZ
	alarmKnown   bool

	Area int // owning area, 0 = unassigned (§3.2)

	VoltageTenths int // volts x 10, from ZV

	// Temperature probe reading from an ST reply (§8): TempEnabled is
	// the inverse of a zero raw byte, TempF is raw-60 for zone probes
	// (distinct from the -40 offset used by keypads/thermostats).
	TempEnabled bool
	TempF       int

	// LastChanged is supplemented from PyElk/Zone/__init__.py, which
	// tracks a per-zone last-change timestamp distinct from Status.
	LastChanged time.Time

	Name string
}

// NewZone returns a Zone with default (all-unknown) values.
func NewZone(number int) *Zone {
	return &Zone{Number: number}
}

// UnpackNibble splits a packed ZC/ZS nibble into state and status, per
// the authoritative rule from §9 REDESIGN FLAGS: state is the low 2
// bits, status the next 2 bits.
func UnpackNibble(nibble byte) (ZoneInputState, ZoneStatus) {
	return ZoneInputState(nibble & 0b11), ZoneStatus((nibble >> 2) & 0b11)
}

// PackNibble is the inverse of UnpackNibble.
func PackNibble(state ZoneInputState, status ZoneStatus) byte {
	return byte(state&0b11) | byte(status&0b11)<<2
}

// ApplyNibble updates State and Status from a packed ZC/ZS nibble. It
// reports whether anything observable changed (§4.5).
func (z *Zone) ApplyNibble(nibble byte, at time.Time) bool {
	state, status := UnpackNibble(nibble)
	changed := !z.statusKnown || z.State != state || z.Status != status
	z.State = state
	z.Status = status
	z.statusKnown = true
	if changed {
		z.LastChanged = at
	}
	return changed
}

// ApplyDefinition updates Definition from a ZD reply.
func (z *Zone) ApplyDefinition(def ZoneDefinition) bool {
	changed := !z.defKnown || z.Definition != def
	z.Definition = def
	z.defKnown = true
	return changed
}

// ApplyAlarm updates Alarm from an AZ reply.
func (z *Zone) ApplyAlarm(alarm byte) bool {
	changed := !z.alarmKnown || z.Alarm != alarm
	z.Alarm = alarm
	z.alarmKnown = true
	return changed
}

// ApplyArea updates the owning area (ZP reply), §3.2 "Area <-> Zone
// membership". Area rebuilds are the Store's job (clearing member_zone
// before each full partition report); this only sets this zone's own
// pointer.
func (z *Zone) ApplyArea(area int) bool {
	changed := z.Area != area
	z.Area = area
	return changed
}

// ApplyVoltage updates VoltageTenths from a ZV reply.
func (z *Zone) ApplyVoltage(tenths int) bool {
	changed := z.VoltageTenths != tenths
	z.VoltageTenths = tenths
	return changed
}

// ApplyTemp updates the temperature probe reading from an ST reply. It
// reports whether anything observable changed.
func (z *Zone) ApplyTemp(raw byte) bool {
	tempEnabled := raw != 0
	tempF := int(raw) - 60
	changed := z.TempEnabled != tempEnabled || (tempEnabled && z.TempF != tempF)
	z.TempEnabled = tempEnabled
	if tempEnabled {
		z.TempF = tempF
	}
	return changed
}

// Enabled reports whether the zone is usable: state, definition and
// alarm must all be known, and the zone must not be simultaneously
// unconfigured and disabled (§3.2).
func (z *Zone) Enabled() bool {
	if !z.statusKnown || !z.defKnown || !z.alarmKnown {
		return false
	}
	if z.State == ZoneUnconfigured && z.Definition == DefinitionDisabled {
		return false
	}
	return true
}

// Voltage returns the decoded voltage in volts.
func (z *Zone) Voltage() float64 {
	return float64(z.VoltageTenths) / 10
}
