package entity

// ThermostatCount is the fixed thermostat capacity (§3.1).
const ThermostatCount = 16

// ThermostatMode is the HVAC mode (§3.3).
type ThermostatMode byte

const (
	ModeOff ThermostatMode = iota
	ModeHeat
	ModeCool
	ModeAuto
	ModeEmergencyHeat
)

// ThermostatHold is whether the current setpoint is held (§3.3).
type ThermostatHold byte

const (
	HoldInactive ThermostatHold = iota
	HoldActive
)

// ThermostatFan is the fan mode (§3.3).
type ThermostatFan byte

const (
	FanAuto ThermostatFan = iota
	FanOn
)

// Thermostat mirrors a TR reply. A raw temperature byte of 0 means the
// sensor is absent; TempEnabled is maintained as the inverse (§3.2).
type Thermostat struct {
	Base

	Number int

	Mode ThermostatMode
	Hold ThermostatHold
	Fan  ThermostatFan

	rawTemp     byte
	TempEnabled bool
	TempF       int

	SetpointHeat int
	SetpointCool int
	Humidity     int

	// Omnistat2 register subset (§4.9), tunnelled over T2 and addressed
	// to this thermostat by device number. Zero until the first RESP_DATA
	// envelope arrives.
	OmniModel        byte
	OmniCurrentTempC float64
	OmniOutsideTempC float64
	OmniAux3TempC    float64
	OmniAux4TempC    float64
	OmniHumidity     byte

	Name string
}

// NewThermostat returns a Thermostat with default (disabled) state.
func NewThermostat(number int) *Thermostat {
	return &Thermostat{Number: number}
}

// ApplyData updates the thermostat from a TR reply's raw fields. It
// reports whether anything observable changed.
func (t *Thermostat) ApplyData(mode ThermostatMode, hold ThermostatHold, fan ThermostatFan, rawTemp byte, setHeat, setCool, humidity int) bool {
	tempEnabled := rawTemp != 0
	tempF := int(rawTemp) - 40

	changed := t.Mode != mode || t.Hold != hold || t.Fan != fan ||
		t.TempEnabled != tempEnabled || (tempEnabled && t.TempF != tempF) ||
		t.SetpointHeat != setHeat || t.SetpointCool != setCool || t.Humidity != humidity

	t.Mode, t.Hold, t.Fan = mode, hold, fan
	t.rawTemp = rawTemp
	t.TempEnabled = tempEnabled
	if tempEnabled {
		t.TempF = tempF
	}
	t.SetpointHeat, t.SetpointCool, t.Humidity = setHeat, setCool, humidity
	return changed
}

// ApplyOmnistatRegisters updates the Omnistat2 register subset (§4.9)
// from a decoded RESP_DATA envelope. It reports whether anything
// observable changed. Values are passed as discrete scalars rather than
// the omnistat package's Registers type to keep this package free of a
// dependency on the wire codec.
func (t *Thermostat) ApplyOmnistatRegisters(model byte, currentC, outsideC, aux3C, aux4C float64, humidity byte) bool {
	changed := t.OmniModel != model ||
		t.OmniCurrentTempC != currentC || t.OmniOutsideTempC != outsideC ||
		t.OmniAux3TempC != aux3C || t.OmniAux4TempC != aux4C ||
		t.OmniHumidity != humidity

	t.OmniModel = model
	t.OmniCurrentTempC = currentC
	t.OmniOutsideTempC = outsideC
	t.OmniAux3TempC = aux3C
	t.OmniAux4TempC = aux4C
	t.OmniHumidity = humidity
	return changed
}

// TempC returns the current temperature in Celsius.
func (t *Thermostat) TempC() float64 {
	return (float64(t.TempF) - 32) * 5 / 9
}
