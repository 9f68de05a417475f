package entity

// OutputCount is the fixed output capacity (§3.1).
const OutputCount = 208

// Output is a controllable relay/output (glossary), grounded on
// PyElk/Output/__init__.py's STATUS_OFF/STATUS_ON pair.
type Output struct {
	Base

	Number int
	On     bool
	known  bool

	Name string
}

// NewOutput returns an Output with default (unknown) state.
func NewOutput(number int) *Output {
	return &Output{Number: number}
}

// ApplyState updates On from a CC/CS reply. It reports whether anything
// observable changed.
func (o *Output) ApplyState(on bool) bool {
	changed := !o.known || o.On != on
	o.On = on
	o.known = true
	return changed
}
