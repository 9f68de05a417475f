package entity

// X10DeviceCount is the fixed X10/PLC device capacity: 16 house codes x
// 16 unit codes (§3.1).
const X10DeviceCount = 256

// X10Status is the device's level class (§3.3).
type X10Status byte

const (
	X10Off X10Status = iota
	X10On
	X10Dimmed
)

// X10Device is a legacy power-line control device addressed by a
// (house, unit) pair bijective with a flat index 0..255 (§3.2). The
// bijection is implemented once, in msg.HouseUnitToIndex /
// msg.IndexToHouseUnit, and never re-derived here.
type X10Device struct {
	Base

	Index  int // 0-based flat index, see msg.HouseUnitToIndex
	Status X10Status
	Level  int // 0..99, meaningful when Status == X10Dimmed

	Name string
}

// NewX10Device returns an X10Device with default (Off) state.
func NewX10Device(index int) *X10Device {
	return &X10Device{Index: index}
}

// ApplyLevel updates Status/Level from a PC or PS reply's level 0..99
// (§3.3: 0 = Off, levels 2..99 imply Dimmed, 1 = On in some encodings).
func (x *X10Device) ApplyLevel(level int) bool {
	var status X10Status
	switch {
	case level == 0:
		status = X10Off
	case level == 1:
		status = X10On
	default:
		status = X10Dimmed
	}
	changed := x.Status != status || x.Level != level
	x.Status = status
	x.Level = level
	return changed
}
