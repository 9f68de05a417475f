package entity

import "github.com/BioSehnsucht/pyelk/msg"

// CustomSettingCount is the fixed custom setting capacity (§3.1).
const CustomSettingCount = 20

// Setting mirrors one custom setting register. Its format determines how
// Value is interpreted: a plain number, a timer in seconds, or a packed
// BCD time-of-day (§6 "set_value(v) where v may be number, timer
// seconds, or time-of-day").
type Setting struct {
	Base

	Number int
	Format msg.SettingFormat
	Value  int
	known  bool

	Name string
}

// NewSetting returns a Setting with default (unknown) value.
func NewSetting(number int) *Setting {
	return &Setting{Number: number}
}

// ApplyValue updates Format/Value from a CR reply entry.
func (s *Setting) ApplyValue(format msg.SettingFormat, value int) bool {
	changed := !s.known || s.Format != format || s.Value != value
	s.Format = format
	s.Value = value
	s.known = true
	return changed
}
