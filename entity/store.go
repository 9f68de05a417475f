package entity

import (
	"encoding/json"
	"time"

	"github.com/BioSehnsucht/pyelk/msg"
	"github.com/pkg/errors"
)

// Runtime is the process-wide connection state (§5), distinct from any
// one entity's status.
type Runtime byte

const (
	Disconnected Runtime = iota
	Connecting
	Running
	Paused // ElkRP has taken the line (§4.4 "RP" gating)
)

// Store owns every entity array and the cross-entity invariants of
// §3.2: area/zone and area/keypad membership, last-user attribution, and
// the X10 house/unit mapping. Exactly one goroutine (the dispatcher)
// mutates a Store at a time (§3.4, §5); it is not safe for concurrent
// use by design, matching every entity's own single-writer contract.
type Store struct {
	Runtime Runtime

	Zones       [ZoneCount + 1]*Zone // 1-based; index 0 unused
	Areas       [AreaCount + 1]*Area
	Keypads     [KeypadCount + 1]*Keypad
	Outputs     [OutputCount + 1]*Output
	Tasks       [TaskCount + 1]*Task
	Thermostats [ThermostatCount + 1]*Thermostat
	X10         [X10DeviceCount]*X10Device
	Counters    [CounterCount + 1]*Counter
	Settings    [CustomSettingCount + 1]*Setting
	Users       [UserCount + 1]*User
}

// NewStore allocates every entity slot up front with default values
// (§3.4: "all entities are created up front").
func NewStore() *Store {
	s := &Store{}
	for i := 1; i <= ZoneCount; i++ {
		s.Zones[i] = NewZone(i)
	}
	for i := 1; i <= AreaCount; i++ {
		s.Areas[i] = NewArea(i)
	}
	for i := 1; i <= KeypadCount; i++ {
		s.Keypads[i] = NewKeypad(i)
	}
	for i := 1; i <= OutputCount; i++ {
		s.Outputs[i] = NewOutput(i)
	}
	for i := 1; i <= TaskCount; i++ {
		s.Tasks[i] = NewTask(i)
	}
	for i := 1; i <= ThermostatCount; i++ {
		s.Thermostats[i] = NewThermostat(i)
	}
	for i := range s.X10 {
		s.X10[i] = NewX10Device(i)
	}
	for i := 1; i <= CounterCount; i++ {
		s.Counters[i] = NewCounter(i)
	}
	for i := 1; i <= CustomSettingCount; i++ {
		s.Settings[i] = NewSetting(i)
	}
	for i := 1; i <= UserCount; i++ {
		s.Users[i] = NewUser(i)
	}
	return s
}

// RebuildAreaMembers clears every area's MemberZone/MemberKeypad and
// rebuilds them from each Zone's and Keypad's own Area pointer (§3.2:
// "MUST be rebuilt by clearing all entries before each partition
// report").
func (s *Store) RebuildAreaMembers() {
	for i := 1; i <= AreaCount; i++ {
		s.Areas[i].ResetMembers()
	}
	for i := 1; i <= ZoneCount; i++ {
		z := s.Zones[i]
		if z.Area >= 1 && z.Area <= AreaCount {
			s.Areas[z.Area].MemberZone[i] = true
		}
	}
	for i := 1; i <= KeypadCount; i++ {
		k := s.Keypads[i]
		if k.Area >= 1 && k.Area <= AreaCount {
			s.Areas[k.Area].MemberKeypad[i] = true
		}
	}
}

// AttributionFor returns the most recent user-code-entered event on any
// keypad belonging to area, or nil if none of that area's keypads has
// one (§3.2, §8 scenario 1).
func (s *Store) AttributionFor(area int) *Attribution {
	var best *Attribution
	if area < 1 || area > AreaCount {
		return nil
	}
	for i := 1; i <= KeypadCount; i++ {
		k := s.Keypads[i]
		if k.Area != area || k.LastUserAt.IsZero() {
			continue
		}
		if best == nil || k.LastUserAt.After(best.At) {
			best = &Attribution{User: k.LastUserNum, At: k.LastUserAt}
		}
	}
	return best
}

// ApplyUserCodeEntered records an IC event on keypad n, making it
// available to the next ApplyArmingStatus on that keypad's area.
func (s *Store) ApplyUserCodeEntered(keypad, user int, at time.Time) error {
	if keypad < 1 || keypad > KeypadCount {
		return errors.Errorf("entity: keypad %d out of range", keypad)
	}
	s.Keypads[keypad].ApplyUserCode(user, at)
	return nil
}

// X10Index converts a wire house/unit pair to a Store slot, funnelling
// through msg.HouseUnitToIndex per §3.2.
func (s *Store) X10Index(house byte, unit int) (*X10Device, error) {
	idx, err := msg.HouseUnitToIndex(house, unit)
	if err != nil {
		return nil, err
	}
	return s.X10[idx], nil
}

// ExpireTasks carries every still-on Task back to Off once its grace
// period has elapsed, and returns the tasks that changed (§3.3).
func (s *Store) ExpireTasks(now time.Time) []*Task {
	var changed []*Task
	for i := 1; i <= TaskCount; i++ {
		if s.Tasks[i].Expire(now) {
			changed = append(changed, s.Tasks[i])
		}
	}
	return changed
}

// snapshotDoc is the top-level shape of the fast-load file (§6).
type snapshotDoc struct {
	Zone       []zoneSnap       `json:"zone"`
	Area       []areaSnap       `json:"area"`
	Keypad     []keypadSnap     `json:"keypad"`
	Output     []outputSnap     `json:"output"`
	Task       []taskSnap       `json:"task"`
	Thermostat []thermostatSnap `json:"thermostat"`
	X10        []x10Snap        `json:"x10"`
	Counter    []counterSnap    `json:"counter"`
	Setting    []settingSnap    `json:"setting"`
	User       []userSnap       `json:"user"`
}

type zoneSnap struct {
	Number      int            `json:"number"`
	State       ZoneInputState `json:"state"`
	Status      ZoneStatus     `json:"status"`
	StatusKnown bool           `json:"status_known"`
	Definition  ZoneDefinition `json:"definition"`
	DefKnown    bool           `json:"def_known"`
	Alarm       byte           `json:"alarm"`
	AlarmKnown  bool           `json:"alarm_known"`
	Area        int            `json:"area"`
	Name        string         `json:"name"`
}

type areaSnap struct {
	Number      int         `json:"number"`
	Status      AreaStatus  `json:"status"`
	StatusKnown bool        `json:"status_known"`
	ArmUp       ArmUpStatus `json:"arm_up"`
	Alarm       AlarmKind   `json:"alarm"`
	Name        string      `json:"name"`
}

type keypadSnap struct {
	Number int    `json:"number"`
	Area   int    `json:"area"`
	Name   string `json:"name"`
}

type outputSnap struct {
	Number int    `json:"number"`
	On     bool   `json:"on"`
	Known  bool   `json:"known"`
	Name   string `json:"name"`
}

type taskSnap struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type thermostatSnap struct {
	Number           int            `json:"number"`
	Mode             ThermostatMode `json:"mode"`
	Hold             ThermostatHold `json:"hold"`
	Fan              ThermostatFan  `json:"fan"`
	TempEnabled      bool           `json:"temp_enabled"`
	TempF            int            `json:"temp_f"`
	SetpointHeat     int            `json:"setpoint_heat"`
	SetpointCool     int            `json:"setpoint_cool"`
	Humidity         int            `json:"humidity"`
	OmniModel        byte           `json:"omni_model"`
	OmniCurrentTempC float64        `json:"omni_current_temp_c"`
	OmniOutsideTempC float64        `json:"omni_outside_temp_c"`
	OmniAux3TempC    float64        `json:"omni_aux3_temp_c"`
	OmniAux4TempC    float64        `json:"omni_aux4_temp_c"`
	OmniHumidity     byte           `json:"omni_humidity"`
	Name             string         `json:"name"`
}

type x10Snap struct {
	Index  int       `json:"index"`
	Status X10Status `json:"status"`
	Level  int       `json:"level"`
	Name   string    `json:"name"`
}

type counterSnap struct {
	Number int    `json:"number"`
	Value  int    `json:"value"`
	Known  bool   `json:"known"`
	Name   string `json:"name"`
}

type settingSnap struct {
	Number int               `json:"number"`
	Format msg.SettingFormat `json:"format"`
	Value  int               `json:"value"`
	Known  bool              `json:"known"`
	Name   string            `json:"name"`
}

type userSnap struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// MarshalSnapshot projects the Store into the fast-load JSON document
// shape (§6). Unknown entities (never successfully scanned) are still
// included, carrying their zero values; Load treats a missing field as
// "unknown" on the next run rather than this process distinguishing it.
func (s *Store) MarshalSnapshot() ([]byte, error) {
	var doc snapshotDoc
	for i := 1; i <= ZoneCount; i++ {
		z := s.Zones[i]
		doc.Zone = append(doc.Zone, zoneSnap{z.Number, z.State, z.Status, z.statusKnown, z.Definition, z.defKnown, z.Alarm, z.alarmKnown, z.Area, z.Name})
	}
	for i := 1; i <= AreaCount; i++ {
		a := s.Areas[i]
		doc.Area = append(doc.Area, areaSnap{a.Number, a.Status, a.statusKnown, a.ArmUp, a.Alarm, a.Name})
	}
	for i := 1; i <= KeypadCount; i++ {
		k := s.Keypads[i]
		doc.Keypad = append(doc.Keypad, keypadSnap{k.Number, k.Area, k.Name})
	}
	for i := 1; i <= OutputCount; i++ {
		o := s.Outputs[i]
		doc.Output = append(doc.Output, outputSnap{o.Number, o.On, o.known, o.Name})
	}
	for i := 1; i <= TaskCount; i++ {
		doc.Task = append(doc.Task, taskSnap{s.Tasks[i].Number, s.Tasks[i].Name})
	}
	for i := 1; i <= ThermostatCount; i++ {
		t := s.Thermostats[i]
		doc.Thermostat = append(doc.Thermostat, thermostatSnap{
			t.Number, t.Mode, t.Hold, t.Fan, t.TempEnabled, t.TempF,
			t.SetpointHeat, t.SetpointCool, t.Humidity,
			t.OmniModel, t.OmniCurrentTempC, t.OmniOutsideTempC, t.OmniAux3TempC, t.OmniAux4TempC, t.OmniHumidity,
			t.Name,
		})
	}
	for i := range s.X10 {
		x := s.X10[i]
		doc.X10 = append(doc.X10, x10Snap{x.Index, x.Status, x.Level, x.Name})
	}
	for i := 1; i <= CounterCount; i++ {
		c := s.Counters[i]
		doc.Counter = append(doc.Counter, counterSnap{c.Number, c.Value, c.known, c.Name})
	}
	for i := 1; i <= CustomSettingCount; i++ {
		st := s.Settings[i]
		doc.Setting = append(doc.Setting, settingSnap{st.Number, st.Format, st.Value, st.known, st.Name})
	}
	for i := 1; i <= UserCount; i++ {
		doc.User = append(doc.User, userSnap{s.Users[i].Number, s.Users[i].Name})
	}
	return json.Marshal(doc)
}

// LoadSnapshot restores names and last-known values from a fast-load
// file. Entries for out-of-range numbers are ignored; fields absent from
// an older snapshot leave the corresponding entity in its already-unknown
// state (§6 "forward-compatible").
func (s *Store) LoadSnapshot(data []byte) error {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "entity: decode snapshot")
	}
	for _, z := range doc.Zone {
		if z.Number < 1 || z.Number > ZoneCount {
			continue
		}
		dst := s.Zones[z.Number]
		dst.Name = z.Name
		dst.Area = z.Area
		dst.State = z.State
		dst.Status = z.Status
		dst.statusKnown = z.StatusKnown
		dst.Definition = z.Definition
		dst.defKnown = z.DefKnown
		dst.Alarm = z.Alarm
		dst.alarmKnown = z.AlarmKnown
	}
	for _, a := range doc.Area {
		if a.Number < 1 || a.Number > AreaCount {
			continue
		}
		dst := s.Areas[a.Number]
		dst.Name = a.Name
		dst.Status = a.Status
		dst.statusKnown = a.StatusKnown
		dst.ArmUp = a.ArmUp
		dst.Alarm = a.Alarm
	}
	for _, k := range doc.Keypad {
		if k.Number < 1 || k.Number > KeypadCount {
			continue
		}
		s.Keypads[k.Number].Name = k.Name
		s.Keypads[k.Number].Area = k.Area
	}
	for _, o := range doc.Output {
		if o.Number < 1 || o.Number > OutputCount {
			continue
		}
		dst := s.Outputs[o.Number]
		dst.Name = o.Name
		dst.On = o.On
		dst.known = o.Known
	}
	for _, t := range doc.Task {
		if t.Number < 1 || t.Number > TaskCount {
			continue
		}
		s.Tasks[t.Number].Name = t.Name
	}
	for _, t := range doc.Thermostat {
		if t.Number < 1 || t.Number > ThermostatCount {
			continue
		}
		dst := s.Thermostats[t.Number]
		dst.Name = t.Name
		dst.Mode = t.Mode
		dst.Hold = t.Hold
		dst.Fan = t.Fan
		dst.TempEnabled = t.TempEnabled
		dst.TempF = t.TempF
		dst.SetpointHeat = t.SetpointHeat
		dst.SetpointCool = t.SetpointCool
		dst.Humidity = t.Humidity
		dst.OmniModel = t.OmniModel
		dst.OmniCurrentTempC = t.OmniCurrentTempC
		dst.OmniOutsideTempC = t.OmniOutsideTempC
		dst.OmniAux3TempC = t.OmniAux3TempC
		dst.OmniAux4TempC = t.OmniAux4TempC
		dst.OmniHumidity = t.OmniHumidity
	}
	for _, x := range doc.X10 {
		if x.Index < 0 || x.Index >= X10DeviceCount {
			continue
		}
		dst := s.X10[x.Index]
		dst.Name = x.Name
		dst.Status = x.Status
		dst.Level = x.Level
	}
	for _, c := range doc.Counter {
		if c.Number < 1 || c.Number > CounterCount {
			continue
		}
		dst := s.Counters[c.Number]
		dst.Name = c.Name
		dst.Value = c.Value
		dst.known = c.Known
	}
	for _, st := range doc.Setting {
		if st.Number < 1 || st.Number > CustomSettingCount {
			continue
		}
		dst := s.Settings[st.Number]
		dst.Name = st.Name
		dst.Format = st.Format
		dst.Value = st.Value
		dst.known = st.Known
	}
	for _, u := range doc.User {
		if u.Number < 1 || u.Number > UserCount {
			continue
		}
		if name, ok := reservedUserNames[u.Number]; ok {
			s.Users[u.Number].Name = name
			continue
		}
		s.Users[u.Number].Name = u.Name
	}
	return nil
}
