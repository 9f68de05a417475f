package pyelk

import (
	"github.com/pkg/errors"

	"github.com/BioSehnsucht/pyelk/entity"
	"github.com/BioSehnsucht/pyelk/msg"
)

// ErrExcluded is returned by a command method whose target entity number
// is out of range or excluded by the configured mask (§4.8).
var ErrExcluded = errors.New("pyelk: entity excluded by configuration")

// Arm arms area at level using a 4- or 6-digit user code (§4.8).
func (p *Panel) Arm(area int, level msg.ArmLevel, userCode string) error {
	if area < 1 || area > entity.AreaCount || !p.masks.area.allows(area) {
		return ErrExcluded
	}
	p.push(msg.ArmKind(level), msg.EncodeArm(area, userCode), msg.ArmingStatus)
	return nil
}

// Disarm disarms area with userCode (§4.8).
func (p *Panel) Disarm(area int, userCode string) error {
	return p.Arm(area, msg.Disarm, userCode)
}

// OutputOn turns output on for durationSeconds (0 = until explicitly
// turned off; §4.8 range 0..65535).
func (p *Panel) OutputOn(output int, durationSeconds int) error {
	if output < 1 || output > entity.OutputCount || !p.masks.output.allows(output) {
		return ErrExcluded
	}
	if durationSeconds < 0 || durationSeconds > 65535 {
		return errors.Errorf("pyelk: output duration %d out of range", durationSeconds)
	}
	p.push(msg.OutputOnKind, msg.EncodeOutputOn(output, durationSeconds), msg.OutputUpdate)
	return nil
}

// OutputOff turns output off (§4.8).
func (p *Panel) OutputOff(output int) error {
	if output < 1 || output > entity.OutputCount || !p.masks.output.allows(output) {
		return ErrExcluded
	}
	p.push(msg.OutputOffKind, msg.EncodeOutputSimple(output), msg.OutputUpdate)
	return nil
}

// OutputToggle toggles output (§4.8).
func (p *Panel) OutputToggle(output int) error {
	if output < 1 || output > entity.OutputCount || !p.masks.output.allows(output) {
		return ErrExcluded
	}
	p.push(msg.OutputToggleKind, msg.EncodeOutputSimple(output), msg.OutputUpdate)
	return nil
}

// TaskActivate fires a momentary task activation (§4.8).
func (p *Panel) TaskActivate(task int) error {
	if task < 1 || task > entity.TaskCount || !p.masks.task.allows(task) {
		return ErrExcluded
	}
	p.push(msg.TaskActivateKind, msg.EncodeTaskActivate(task), msg.TaskUpdate)
	return nil
}

// x10Payload validates the house/unit pair and checks it against the X10
// mask, returning ErrExcluded when the device is masked out.
func (p *Panel) x10Payload(house byte, unit int) error {
	idx, err := msg.HouseUnitToIndex(house, unit)
	if err != nil {
		return err
	}
	if !p.masks.x10.allows(idx) {
		return ErrExcluded
	}
	return nil
}

// X10SetLevel sets an X10 device's level 0..100 (§4.8). The level is sent
// unchanged in a single pc request; no separate off, on or PresetDim
// function is selected for the extremes or the values in between.
func (p *Panel) X10SetLevel(house byte, unit int, level int) error {
	if err := p.x10Payload(house, unit); err != nil {
		return err
	}
	if level < 0 || level > 100 {
		return errors.Errorf("pyelk: X10 level %d out of range", level)
	}
	p.push(msg.PLCSetLevelKind, msg.EncodePLCSetLevel(house, unit, level), msg.PLCChange)
	return nil
}

// X10On turns an X10 device fully on (§4.8).
func (p *Panel) X10On(house byte, unit int) error {
	return p.X10SetLevel(house, unit, 100)
}

// X10Off turns an X10 device fully off (§4.8).
func (p *Panel) X10Off(house byte, unit int) error {
	return p.X10SetLevel(house, unit, 0)
}

// X10Toggle toggles an X10 device based on its last-known status (§4.8).
func (p *Panel) X10Toggle(house byte, unit int) error {
	if err := p.x10Payload(house, unit); err != nil {
		return err
	}
	dev, err := p.store.X10Index(house, unit)
	if err != nil {
		return err
	}
	if dev.Status == entity.X10Off {
		return p.X10On(house, unit)
	}
	return p.X10Off(house, unit)
}

// ThermostatSetMode sets a thermostat's HVAC mode (§4.8).
func (p *Panel) ThermostatSetMode(thermostat int, mode entity.ThermostatMode) error {
	return p.thermostatSet(thermostat, msg.ThermoSetMode, int(mode))
}

// ThermostatSetHold sets a thermostat's hold state (§4.8).
func (p *Panel) ThermostatSetHold(thermostat int, hold entity.ThermostatHold) error {
	return p.thermostatSet(thermostat, msg.ThermoSetHold, int(hold))
}

// ThermostatSetFan sets a thermostat's fan mode (§4.8).
func (p *Panel) ThermostatSetFan(thermostat int, fan entity.ThermostatFan) error {
	return p.thermostatSet(thermostat, msg.ThermoSetFan, int(fan))
}

// ThermostatSetCool sets the cooling setpoint, 1..99 degrees F (§4.8).
func (p *Panel) ThermostatSetCool(thermostat int, degreesF int) error {
	if degreesF < 1 || degreesF > 99 {
		return errors.Errorf("pyelk: cooling setpoint %d out of range", degreesF)
	}
	return p.thermostatSet(thermostat, msg.ThermoSetCool, degreesF)
}

// ThermostatSetHeat sets the heating setpoint, 1..99 degrees F (§4.8).
func (p *Panel) ThermostatSetHeat(thermostat int, degreesF int) error {
	if degreesF < 1 || degreesF > 99 {
		return errors.Errorf("pyelk: heating setpoint %d out of range", degreesF)
	}
	return p.thermostatSet(thermostat, msg.ThermoSetHeat, degreesF)
}

func (p *Panel) thermostatSet(thermostat int, fn msg.ThermostatFunction, value int) error {
	if thermostat < 1 || thermostat > entity.ThermostatCount || !p.masks.thermostat.allows(thermostat) {
		return ErrExcluded
	}
	p.push(msg.ThermostatSetKind, msg.EncodeThermostatSet(thermostat, fn, value), msg.ThermostatData)
	return nil
}

// ThermostatRequestTemp requests a fresh data reply for thermostat, or
// for all thermostats when thermostat is 0 (§4.8).
func (p *Panel) ThermostatRequestTemp(thermostat int) error {
	if thermostat != 0 && (thermostat < 1 || thermostat > entity.ThermostatCount || !p.masks.thermostat.allows(thermostat)) {
		return ErrExcluded
	}
	p.push(msg.ThermostatReqKind, msg.EncodeThermostatRequest(thermostat), msg.ThermostatData)
	return nil
}

// CounterGetValue requests counter's current value (§4.8).
func (p *Panel) CounterGetValue(counter int) error {
	if counter < 1 || counter > entity.CounterCount || !p.masks.counter.allows(counter) {
		return ErrExcluded
	}
	p.push(msg.CounterReadKind, msg.EncodeCounterRead(counter), msg.CounterReply)
	return nil
}

// CounterSetValue sets counter to value, 0..65535 (§4.8).
func (p *Panel) CounterSetValue(counter int, value int) error {
	if counter < 1 || counter > entity.CounterCount || !p.masks.counter.allows(counter) {
		return ErrExcluded
	}
	if value < 0 || value > 65535 {
		return errors.Errorf("pyelk: counter value %d out of range", value)
	}
	p.push(msg.CounterWriteKind, msg.EncodeCounterWrite(counter, value), msg.CounterReply)
	return nil
}

// SettingGetValue requests a custom setting's current value (§4.8).
func (p *Panel) SettingGetValue(setting int) error {
	if setting < 1 || setting > entity.CustomSettingCount || !p.masks.setting.allows(setting) {
		return ErrExcluded
	}
	p.push(msg.SettingReadKind, msg.EncodeSettingRead(setting), msg.ValueRead)
	return nil
}

// SettingSetValue sets a custom setting's value, interpreted per format
// (plain number, timer seconds, or packed BCD time-of-day; §4.8).
func (p *Panel) SettingSetValue(setting int, value int, format msg.SettingFormat) error {
	if setting < 1 || setting > entity.CustomSettingCount || !p.masks.setting.allows(setting) {
		return ErrExcluded
	}
	p.push(msg.SettingWriteKind, msg.EncodeSettingWrite(setting, value, format), msg.ValueRead)
	return nil
}
