package msg

import "github.com/BioSehnsucht/pyelk/frame"

// ArmLevel enumerates the arm/disarm levels the façade's command surface
// accepts (§4.8).
type ArmLevel byte

const (
	Disarm ArmLevel = iota
	ArmAway
	ArmStay
	ArmStayInstant
	ArmNight
	ArmNightInstant
	ArmVacation
	ArmNextAway
	ArmNextStay
	ArmForceAway
	ArmForceStay
)

// ArmKind builds the "a?" request tag for level (§4.2 odd cases: "a:" is
// a legal tag, the colon being the fake-hex digit for level 10).
func ArmKind(level ArmLevel) Kind {
	return Kind([]byte{ArmRequestPrefix, frame.HexFake(byte(level))})
}

// EncodeArm builds the payload for an arm/disarm command: 1-based area
// number and a 4- or 6-digit user code, left-zero-padded to 6 (§4.8).
func EncodeArm(area int, userCode string) string {
	return encodeDecimalField(area, 1) + padCode(userCode)
}

func padCode(code string) string {
	if len(code) >= 6 {
		return code[:6]
	}
	pad := ""
	for i := 0; i < 6-len(code); i++ {
		pad += "0"
	}
	return pad + code
}

// Command request tags. Not part of the panel's documented reply
// catalogue (§4.2). cn, cf, ct, tn, pc, ts, cw and cx do not collide with
// the scanner's bare request tags (zs, zd, zp, az, cs, as, ka, kc, t2,
// ps, vn); tr, cp and cv are the very tags the scanner sends for its
// thermostat, custom-setting and counter phases.
const (
	OutputOnKind     Kind = "cn"
	OutputOffKind    Kind = "cf"
	OutputToggleKind Kind = "ct"
	TaskActivateKind Kind = "tn"
	PLCSetLevelKind  Kind = "pc"
	ThermostatSetKind Kind = "ts"
	ThermostatReqKind Kind = "tr"
	SettingReadKind  Kind = "cp"
	SettingWriteKind Kind = "cw"
	CounterReadKind  Kind = "cv"
	CounterWriteKind Kind = "cx"
)

// EncodeOutputOn builds the payload for a turn_on command.
func EncodeOutputOn(output, durationSeconds int) string {
	return encodeDecimalField(output, 3) + encodeDecimalField(durationSeconds, 5)
}

// EncodeOutputSimple builds the payload for turn_off/toggle commands.
func EncodeOutputSimple(output int) string {
	return encodeDecimalField(output, 3)
}

// EncodeTaskActivate builds the payload for a task activation command.
func EncodeTaskActivate(task int) string {
	return encodeDecimalField(task, 3)
}

// ThermostatFunction selects which field a ThermostatSetKind command
// writes.
type ThermostatFunction byte

const (
	ThermoSetMode ThermostatFunction = 'M'
	ThermoSetHold ThermostatFunction = 'H'
	ThermoSetFan  ThermostatFunction = 'F'
	ThermoSetCool ThermostatFunction = 'C'
	ThermoSetHeat ThermostatFunction = 'W'
)

// EncodeThermostatSet builds the payload for a thermostat set command.
func EncodeThermostatSet(thermostat int, fn ThermostatFunction, value int) string {
	return encodeDecimalField(thermostat, 2) + string(byte(fn)) + encodeDecimalField(value, 2)
}

// EncodeThermostatRequest builds the payload for a thermostat data
// request; thermostat 0 requests all thermostats.
func EncodeThermostatRequest(thermostat int) string {
	if thermostat == 0 {
		return ""
	}
	return encodeDecimalField(thermostat, 2)
}

// EncodePLCSetLevel builds the payload for an X10/PLC level command:
// house code, two-digit unit, then the level as a decimal field. It
// carries no function code, so off, on and PresetDim are not told apart.
func EncodePLCSetLevel(house byte, unit, level int) string {
	return string(house) + encodeDecimalField(unit, 2) + encodeDecimalField(level, 2)
}

// EncodeCounterRead builds the payload to request a single counter.
func EncodeCounterRead(counter int) string {
	return encodeDecimalField(counter, 2)
}

// EncodeCounterWrite builds the payload to set a counter's value.
func EncodeCounterWrite(counter, value int) string {
	return encodeDecimalField(counter, 2) + encodeDecimalField(value, 5)
}

// EncodeSettingRead builds the payload to request a single custom
// setting, or all of them when setting is 0.
func EncodeSettingRead(setting int) string {
	return encodeDecimalField(setting, 2)
}

// EncodeSettingWrite builds the payload to set a custom setting's value.
func EncodeSettingWrite(setting, value int, format SettingFormat) string {
	return encodeDecimalField(setting, 2) + encodeDecimalField(value, 5) + string(byte('0'+format))
}

// EncodeDescriptionRequest builds the "sd" request payload for the
// scanner's skip-empty description traversal (§4.7).
func EncodeDescriptionRequest(t DescriptionType, number int) string {
	return encodeDecimalField(int(t), 2) + encodeDecimalField(number, 3)
}
