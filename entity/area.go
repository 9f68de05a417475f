package entity

import "time"

// AreaCount is the fixed area capacity (§3.1).
const AreaCount = 8

// AreaStatus is the area's current arming status (§3.3).
type AreaStatus byte

const (
	Disarmed AreaStatus = iota
	ArmedAway
	ArmedStay
	ArmedStayInstant
	ArmedNight
	ArmedNightInstant
	ArmedVacation
	AlarmPending
	AlarmTriggered
	EntryTimerRunning
	ExitTimerRunning
)

// ArmUpStatus is the area's readiness to arm (§3.3), distinct from its
// current Status.
type ArmUpStatus byte

const (
	NotReady ArmUpStatus = iota
	Ready
	ReadyViolatedBypass
	ArmedExitTimer
	FullyArmed
	ForceArmedViolated
	ArmedBypass
)

// AlarmKind is the closed 19-value alarm-cause enum (§3.3), grounded on
// PyElk/Area/__init__.py's ALARM_* table.
type AlarmKind byte

const (
	AlarmNone AlarmKind = iota
	AlarmEntranceDelay
	AlarmAbortDelay
	AlarmFullFire
	AlarmFullMedical
	AlarmFullPolice
	AlarmFullBurglar
	AlarmFullAux1
	AlarmFullAux2
	AlarmFullAux3
	AlarmFullAux4
	AlarmFullCarbonMonoxide
	AlarmFullEmergency
	AlarmFullFreeze
	AlarmFullGas
	AlarmFullHeat
	AlarmFullWater
	AlarmFullFireSupervisory
	AlarmFullFireVerify
)

// Area is a partition of the alarm system that can be armed independently
// (§3.3, glossary).
type Area struct {
	Base

	Number int

	Status      AreaStatus
	ArmUp       ArmUpStatus
	Alarm       AlarmKind
	statusKnown bool

	// Timers (§3.3): reported in full on every entry/exit update.
	EntryTimer1, EntryTimer2 int
	ExitTimer1, ExitTimer2   int

	// MemberZone is the derived inverse of Zone.Area, rebuilt by the
	// Store on every partition report (§3.2).
	MemberZone   [ZoneCount]bool
	MemberKeypad [KeypadCount]bool

	// Last-user attribution (§3.2, §8 scenario 1).
	LastUserNum    int
	LastArmedAt    time.Time
	LastDisarmedAt time.Time

	Name string
}

// NewArea returns an Area with default values.
func NewArea(number int) *Area {
	return &Area{Number: number}
}

// ApplyArmingStatus updates Status/ArmUp/Alarm from one area's slice of
// an AS reply. It reports whether anything observable changed.
//
// attribution, if non-nil, carries the last IC (user code entered) event
// on a keypad belonging to this area; when the transition happens within
// 1.0s of that event the area's last-user and last-armed/disarmed fields
// update atomically with status (§3.2, §8 scenario 1).
func (a *Area) ApplyArmingStatus(status AreaStatus, armUp ArmUpStatus, alarm AlarmKind, at time.Time, attribution *Attribution) bool {
	changed := !a.statusKnown || a.Status != status || a.ArmUp != armUp || a.Alarm != alarm
	prevStatus := a.Status

	a.Status = status
	a.ArmUp = armUp
	a.Alarm = alarm
	a.statusKnown = true

	if attribution != nil && at.Sub(attribution.At) <= time.Second && at.Sub(attribution.At) >= -time.Second {
		a.LastUserNum = attribution.User
		if status == Disarmed && prevStatus != Disarmed {
			a.LastDisarmedAt = at
		} else if status != Disarmed {
			a.LastArmedAt = at
		}
	}
	return changed
}

// ApplyEntryExit updates the timers from an EE reply.
func (a *Area) ApplyEntryExit(direction byte, t1, t2 int) bool {
	var changed bool
	if direction == 0 {
		changed = a.EntryTimer1 != t1 || a.EntryTimer2 != t2
		a.EntryTimer1, a.EntryTimer2 = t1, t2
	} else {
		changed = a.ExitTimer1 != t1 || a.ExitTimer2 != t2
		a.ExitTimer1, a.ExitTimer2 = t1, t2
	}
	return changed
}

// ResetMembers clears MemberZone/MemberKeypad ahead of a full rebuild
// (§3.2: "MUST be rebuilt by clearing all entries before each partition
// report").
func (a *Area) ResetMembers() {
	for i := range a.MemberZone {
		a.MemberZone[i] = false
	}
	for i := range a.MemberKeypad {
		a.MemberKeypad[i] = false
	}
}

// Attribution is the most recent user-code-entered event on a keypad,
// used to correlate an arming transition to a user (§3.2).
type Attribution struct {
	User int
	At   time.Time
}
