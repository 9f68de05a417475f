package entity

import "time"

// KeypadCount is the fixed keypad capacity (§3.1).
const KeypadCount = 16

// Keypad is a user-input device bound to one area (glossary).
type Keypad struct {
	Base

	Number int
	Area   int // owning area, symmetric with Area.MemberKeypad (§3.2)

	LastKey    int
	Illum      [6]byte
	Chime      byte
	BypassArea [8]byte

	LastUserNum int
	LastUserAt  time.Time

	// Temperature probe reading from an ST reply (§8): TempEnabled is
	// the inverse of a zero raw byte, TempF is raw-40.
	TempEnabled bool
	TempF       int

	Name string
}

// NewKeypad returns a Keypad with default values.
func NewKeypad(number int) *Keypad {
	return &Keypad{Number: number}
}

// ApplyStatus updates the keypad's display/bypass state from a KC reply.
func (k *Keypad) ApplyStatus(lastKey int, illum [6]byte, chime byte, bypass [8]byte) bool {
	changed := k.LastKey != lastKey || k.Illum != illum || k.Chime != chime || k.BypassArea != bypass
	k.LastKey = lastKey
	k.Illum = illum
	k.Chime = chime
	k.BypassArea = bypass
	return changed
}

// ApplyArea updates the owning area from a KA reply.
func (k *Keypad) ApplyArea(area int) bool {
	changed := k.Area != area
	k.Area = area
	return changed
}

// ApplyTemp updates the temperature probe reading from an ST reply. It
// reports whether anything observable changed.
func (k *Keypad) ApplyTemp(raw byte) bool {
	tempEnabled := raw != 0
	tempF := int(raw) - 40
	changed := k.TempEnabled != tempEnabled || (tempEnabled && k.TempF != tempF)
	k.TempEnabled = tempEnabled
	if tempEnabled {
		k.TempF = tempF
	}
	return changed
}

// ApplyUserCode records a user-code-entered event (IC) on this keypad,
// used by Store to attribute the next arming transition (§3.2).
func (k *Keypad) ApplyUserCode(user int, at time.Time) bool {
	changed := k.LastUserNum != user
	k.LastUserNum = user
	k.LastUserAt = at
	return changed
}
