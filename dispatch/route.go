package dispatch

import (
	"time"

	"go.uber.org/zap"

	"github.com/BioSehnsucht/pyelk/entity"
	"github.com/BioSehnsucht/pyelk/msg"
	"github.com/BioSehnsucht/pyelk/omnistat"
)

// dispatchAutoProcess applies one auto-processed frame to the entity
// Store (§4.4 routing examples). Index computation is the dispatcher's
// responsibility; entities only expose typed ApplyXxx setters.
func (d *Dispatcher) dispatchAutoProcess(kind msg.Kind, payload string, at time.Time) {
	s := d.store

	switch kind {
	case msg.ArmingStatus:
		m, err := msg.DecodeArmingStatus(payload)
		if d.fail(kind, err) {
			return
		}
		for i := 0; i < entity.AreaCount; i++ {
			a := s.Areas[i+1]
			attr := s.AttributionFor(i + 1)
			changed := a.ApplyArmingStatus(entity.AreaStatus(m.Status[i]), entity.ArmUpStatus(m.ArmUp[i]), entity.AlarmKind(m.Alarm[i]), at, attr)
			d.notify(&a.Base, a, changed)
		}

	case msg.AlarmByZone:
		m, err := msg.DecodeAlarmByZone(payload)
		if d.fail(kind, err) {
			return
		}
		for i := 0; i < entity.ZoneCount; i++ {
			z := s.Zones[i+1]
			changed := z.ApplyAlarm(m.Zone[i])
			d.notify(&z.Base, z, changed)
		}

	case msg.AlarmMemory:
		m, err := msg.DecodeAlarmMemory(payload)
		if d.fail(kind, err) {
			return
		}
		for i := 0; i < entity.AreaCount; i++ {
			a := s.Areas[i+1]
			alarm := entity.AlarmNone
			if m.Area[i] {
				alarm = entity.AlarmFullBurglar
			}
			changed := a.Alarm != alarm
			a.Alarm = alarm
			d.notify(&a.Base, a, changed)
		}

	case msg.EntryExitTimer:
		m, err := msg.DecodeEntryExit(payload)
		if d.fail(kind, err) {
			return
		}
		if m.Area < 1 || m.Area > entity.AreaCount {
			return
		}
		a := s.Areas[m.Area]
		changed := a.ApplyEntryExit(m.Direction, m.Timer1, m.Timer2)
		d.notify(&a.Base, a, changed)

	case msg.UserCodeEntered:
		m, err := msg.DecodeUserCodeEntered(payload)
		if d.fail(kind, err) {
			return
		}
		if m.Invalid() || m.Keypad < 1 || m.Keypad > entity.KeypadCount {
			return
		}
		_ = s.ApplyUserCodeEntered(m.Keypad, m.User, at)

	case msg.KeypadAreaReply:
		m, err := msg.DecodeKeypadArea(payload)
		if d.fail(kind, err) {
			return
		}
		for i := 0; i < entity.KeypadCount; i++ {
			k := s.Keypads[i+1]
			changed := k.ApplyArea(int(m.Area[i]))
			d.notify(&k.Base, k, changed)
		}
		s.RebuildAreaMembers()

	case msg.KeypadStatus:
		m, err := msg.DecodeKeypadStatus(payload)
		if d.fail(kind, err) {
			return
		}
		if m.Keypad < 1 || m.Keypad > entity.KeypadCount {
			return
		}
		k := s.Keypads[m.Keypad]
		changed := k.ApplyStatus(m.LastKey, m.Illum, m.Chime, m.BypassArea)
		d.notify(&k.Base, k, changed)

	case msg.PLCChange:
		m, err := msg.DecodePLCChange(payload)
		if d.fail(kind, err) {
			return
		}
		dev, err := s.X10Index(m.House, m.Unit)
		if d.fail(kind, err) {
			return
		}
		changed := dev.ApplyLevel(m.Level)
		d.notify(&dev.Base, dev, changed)

	case msg.PLCStatus:
		m, err := msg.DecodePLCStatus(payload)
		if d.fail(kind, err) {
			return
		}
		base := m.Bank * msg.X10BankSize
		for i, level := range m.Level {
			idx := base + i
			if idx < 0 || idx >= entity.X10DeviceCount {
				continue
			}
			dev := s.X10[idx]
			changed := dev.ApplyLevel(int(level))
			d.notify(&dev.Base, dev, changed)
		}

	case msg.CounterReply:
		m, err := msg.DecodeCounterReply(payload)
		if d.fail(kind, err) {
			return
		}
		if m.Counter < 1 || m.Counter > entity.CounterCount {
			return
		}
		c := s.Counters[m.Counter]
		changed := c.ApplyValue(m.Value)
		d.notify(&c.Base, c, changed)

	case msg.ValueRead:
		m, err := msg.DecodeValueRead(payload)
		if d.fail(kind, err) {
			return
		}
		for _, e := range m.Entries {
			if e.Setting < 1 || e.Setting > entity.CustomSettingCount {
				continue
			}
			st := s.Settings[e.Setting]
			changed := st.ApplyValue(e.Format, e.Value)
			d.notify(&st.Base, st, changed)
		}

	case msg.OutputUpdate:
		m, err := msg.DecodeOutputUpdate(payload)
		if d.fail(kind, err) {
			return
		}
		if m.Output < 1 || m.Output > entity.OutputCount {
			return
		}
		o := s.Outputs[m.Output]
		changed := o.ApplyState(m.On)
		d.notify(&o.Base, o, changed)

	case msg.OutputStatus:
		m, err := msg.DecodeOutputStatus(payload)
		if d.fail(kind, err) {
			return
		}
		for i := 0; i < entity.OutputCount; i++ {
			o := s.Outputs[i+1]
			changed := o.ApplyState(m.On[i])
			d.notify(&o.Base, o, changed)
		}

	case msg.ZoneUpdate:
		m, err := msg.DecodeZoneUpdate(payload)
		if d.fail(kind, err) {
			return
		}
		if m.Zone < 1 || m.Zone > entity.ZoneCount {
			return
		}
		z := s.Zones[m.Zone]
		changed := z.ApplyNibble(m.Nibble, at)
		d.notify(&z.Base, z, changed)

	case msg.ZoneDefinition:
		m, err := msg.DecodeZoneDefinition(payload)
		if d.fail(kind, err) {
			return
		}
		for i := 0; i < entity.ZoneCount; i++ {
			z := s.Zones[i+1]
			changed := z.ApplyDefinition(entity.ZoneDefinition(m.Definition[i]))
			d.notify(&z.Base, z, changed)
		}

	case msg.ZonePartition:
		m, err := msg.DecodeZonePartition(payload)
		if d.fail(kind, err) {
			return
		}
		for i := 0; i < entity.ZoneCount; i++ {
			z := s.Zones[i+1]
			changed := z.ApplyArea(int(m.Area[i]))
			d.notify(&z.Base, z, changed)
		}
		s.RebuildAreaMembers()

	case msg.ZoneVoltage:
		m, err := msg.DecodeZoneVoltage(payload)
		if d.fail(kind, err) {
			return
		}
		if m.Zone < 1 || m.Zone > entity.ZoneCount {
			return
		}
		z := s.Zones[m.Zone]
		changed := z.ApplyVoltage(m.Tenths)
		d.notify(&z.Base, z, changed)

	case msg.ZoneStatus:
		m, err := msg.DecodeZoneStatus(payload)
		if d.fail(kind, err) {
			return
		}
		for i := 0; i < entity.ZoneCount; i++ {
			z := s.Zones[i+1]
			changed := z.ApplyNibble(m.Nibble[i], at)
			d.notify(&z.Base, z, changed)
		}

	case msg.TaskUpdate:
		m, err := msg.DecodeTaskUpdate(payload)
		if d.fail(kind, err) {
			return
		}
		if m.Task < 1 || m.Task > entity.TaskCount {
			return
		}
		t := s.Tasks[m.Task]
		t.Activate(at)
		d.notify(&t.Base, t, true)

	case msg.ThermostatData:
		m, err := msg.DecodeThermostatData(payload)
		if d.fail(kind, err) {
			return
		}
		if m.Thermostat < 1 || m.Thermostat > entity.ThermostatCount {
			return
		}
		th := s.Thermostats[m.Thermostat]
		changed := th.ApplyData(entity.ThermostatMode(m.Mode), entity.ThermostatHold(m.Hold), entity.ThermostatFan(m.Fan), byte(m.Temp), m.SetpointHeat, m.SetpointCool, m.Humidity)
		d.notify(&th.Base, th, changed)

	case msg.TempRequestReply:
		m, err := msg.DecodeTempReply(payload)
		if d.fail(kind, err) {
			return
		}
		d.applyTempReply(m)

	case msg.VersionReply:
		if _, err := msg.DecodeVersion(payload); d.fail(kind, err) {
			return
		}

	case msg.DescriptionReply:
		m, err := msg.DecodeDescription(payload)
		if d.fail(kind, err) {
			return
		}
		d.applyDescription(m)

	case msg.ElkRPStatus:
		state, err := msg.DecodeElkRPStatus(payload)
		if d.fail(kind, err) {
			return
		}
		d.applyElkRPStatus(state)

	case msg.Omnistat2Data:
		env, err := omnistat.Decode(payload)
		if d.fail(kind, err) {
			return
		}
		d.applyOmnistat(env)

	case msg.EthernetHeartbeat:
		// acknowledged by presence alone (§4.4).

	default:
		// Any other auto-process kind without a native decode/entity
		// mapping: presence is enough, no entity state to update. (RR is
		// not in AutoProcessSet, so it is dropped before reaching here.)
	}
}

func (d *Dispatcher) applyTempReply(m msg.TempReplyMsg) {
	s := d.store
	switch m.Group {
	case msg.TempGroupZone:
		if m.Index < 1 || m.Index > entity.ZoneCount {
			return
		}
		z := s.Zones[m.Index]
		changed := z.ApplyTemp(byte(m.Raw))
		d.notify(&z.Base, z, changed)

	case msg.TempGroupKeypad:
		if m.Index < 1 || m.Index > entity.KeypadCount {
			return
		}
		k := s.Keypads[m.Index]
		changed := k.ApplyTemp(byte(m.Raw))
		d.notify(&k.Base, k, changed)

	case msg.TempGroupThermostat:
		if m.Index < 1 || m.Index > entity.ThermostatCount {
			return
		}
		th := s.Thermostats[m.Index]
		tempF := m.Raw - 40
		changed := !th.TempEnabled || th.TempF != tempF
		th.TempEnabled = m.Raw != 0
		if th.TempEnabled {
			th.TempF = tempF
		}
		d.notify(&th.Base, th, changed)
	}
}

// applyOmnistat routes a decoded Omnistat2 envelope (§4.9) to the
// thermostat it's addressed to. Only RESP_DATA envelopes carry a
// recognized register set; poll requests and group replies are ignored
// without being logged.
func (d *Dispatcher) applyOmnistat(e omnistat.Envelope) {
	if e.Type != omnistat.RespData {
		return
	}
	if int(e.Device) < 1 || int(e.Device) > entity.ThermostatCount {
		return
	}
	regs, err := omnistat.DecodeRegisters(e)
	if d.fail(msg.Omnistat2Data, err) {
		return
	}
	th := d.store.Thermostats[e.Device]
	changed := th.ApplyOmnistatRegisters(regs.Model, regs.CurrentTempC, regs.OutsideTempC, regs.Aux3TempC, regs.Aux4TempC, regs.Humidity)
	d.notify(&th.Base, th, changed)
}

func (d *Dispatcher) applyDescription(m msg.DescriptionMsg) {
	s := d.store
	switch m.Type {
	case msg.DescribeZone:
		if m.Number < 1 || m.Number > entity.ZoneCount {
			return
		}
		s.Zones[m.Number].Name = m.Name
	case msg.DescribeArea:
		if m.Number < 1 || m.Number > entity.AreaCount {
			return
		}
		s.Areas[m.Number].Name = m.Name
	case msg.DescribeKeypad:
		if m.Number < 1 || m.Number > entity.KeypadCount {
			return
		}
		s.Keypads[m.Number].Name = m.Name
	case msg.DescribeOutput:
		if m.Number < 1 || m.Number > entity.OutputCount {
			return
		}
		s.Outputs[m.Number].Name = m.Name
	case msg.DescribeTask:
		if m.Number < 1 || m.Number > entity.TaskCount {
			return
		}
		s.Tasks[m.Number].Name = m.Name
	case msg.DescribeLight:
		// X10 names are not applied here. The scanner's X10 phase
		// stores each reply's name directly in the Store, using the
		// reply's number as the flat 0..255 X10 index.
	case msg.DescribeCustomSetting:
		if m.Number < 1 || m.Number > entity.CustomSettingCount {
			return
		}
		s.Settings[m.Number].Name = m.Name
	case msg.DescribeCounter:
		if m.Number < 1 || m.Number > entity.CounterCount {
			return
		}
		s.Counters[m.Number].Name = m.Name
	case msg.DescribeThermostat:
		if m.Number < 1 || m.Number > entity.ThermostatCount {
			return
		}
		s.Thermostats[m.Number].Name = m.Name
	case msg.DescribeUser:
		if m.Number < 1 || m.Number > entity.UserCount {
			return
		}
		s.Users[m.Number].Name = m.Name
	}
}

func (d *Dispatcher) applyElkRPStatus(state msg.ElkRPState) {
	switch state {
	case msg.ElkRPDisconnected:
		d.out.Flush()
		d.out.SetPaused(false)
		d.store.Runtime = entity.Running
	case msg.ElkRPConnected, msg.ElkRPConnecting:
		d.store.Runtime = entity.Paused
		d.out.SetPaused(true)
	}
}

func (d *Dispatcher) fail(kind msg.Kind, err error) bool {
	if err == nil {
		return false
	}
	d.logger.Debug("dispatch: decode failed", zap.String("kind", string(kind)), zap.Error(err))
	return true
}
