package entity

import (
	"testing"
	"time"

	"github.com/BioSehnsucht/pyelk/msg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaZoneMembershipRebuild(t *testing.T) {
	s := NewStore()
	s.Zones[1].ApplyArea(2)
	s.Zones[5].ApplyArea(2)
	s.Keypads[3].ApplyArea(2)
	s.RebuildAreaMembers()

	assert.True(t, s.Areas[2].MemberZone[1])
	assert.True(t, s.Areas[2].MemberZone[5])
	assert.True(t, s.Areas[2].MemberKeypad[3])
	assert.False(t, s.Areas[1].MemberZone[1])

	// Reassign zone 5 away from area 2 and rebuild: stale membership
	// must be cleared, not just added to.
	s.Zones[5].ApplyArea(1)
	s.RebuildAreaMembers()
	assert.False(t, s.Areas[2].MemberZone[5])
	assert.True(t, s.Areas[1].MemberZone[5])
}

func TestX10Bijection(t *testing.T) {
	for h := byte('A'); h <= 'P'; h++ {
		for u := 1; u <= 16; u++ {
			idx, err := msg.HouseUnitToIndex(h, u)
			require.NoError(t, err)
			gotH, gotU, err := msg.IndexToHouseUnit(idx)
			require.NoError(t, err)
			assert.Equal(t, h, gotH)
			assert.Equal(t, u, gotU)
		}
	}
}

func TestLastUserAttributionWindow(t *testing.T) {
	s := NewStore()
	s.Keypads[2].ApplyArea(1)
	base := time.Unix(1000, 0)

	require.NoError(t, s.ApplyUserCodeEntered(2, 5, base.Add(1*time.Second)))

	attr := s.AttributionFor(1)
	require.NotNil(t, attr)
	at := base.Add(1300 * time.Millisecond)
	changed := s.Areas[1].ApplyArmingStatus(ArmedAway, FullyArmed, AlarmNone, at, attr)

	assert.True(t, changed)
	assert.Equal(t, 5, s.Areas[1].LastUserNum)
	assert.WithinDuration(t, at, s.Areas[1].LastArmedAt, 0)
	assert.True(t, s.Areas[1].LastDisarmedAt.IsZero())
}

func TestLastUserAttributionOutsideWindowIgnored(t *testing.T) {
	s := NewStore()
	s.Keypads[2].ApplyArea(1)
	base := time.Unix(2000, 0)
	require.NoError(t, s.ApplyUserCodeEntered(2, 5, base))

	attr := s.AttributionFor(1)
	require.NotNil(t, attr)
	at := base.Add(5 * time.Second) // well outside the 1.0s window
	s.Areas[1].ApplyArmingStatus(ArmedAway, FullyArmed, AlarmNone, at, attr)

	assert.Equal(t, 0, s.Areas[1].LastUserNum)
	assert.True(t, s.Areas[1].LastArmedAt.IsZero())
}

func TestZoneEnabledInvariant(t *testing.T) {
	z := NewZone(1)
	assert.False(t, z.Enabled(), "unknown fields must not report enabled")

	z.ApplyNibble(PackNibble(ZoneOpen, ZoneNormal), time.Now())
	z.ApplyAlarm(0)
	assert.False(t, z.Enabled(), "definition still unknown")

	z.ApplyDefinition(DefinitionBurglar1)
	assert.True(t, z.Enabled())
}

func TestZoneEnabledUnconfiguredAndDisabled(t *testing.T) {
	z := NewZone(1)
	z.ApplyNibble(PackNibble(ZoneUnconfigured, ZoneNormal), time.Now())
	z.ApplyDefinition(DefinitionDisabled)
	z.ApplyAlarm(0)
	assert.False(t, z.Enabled(), "unconfigured+disabled is never enabled, even with all fields known")
}

func TestZoneNibblePackRoundTrip(t *testing.T) {
	for s := ZoneInputState(0); s < 4; s++ {
		for st := ZoneStatus(0); st < 4; st++ {
			gotS, gotSt := UnpackNibble(PackNibble(s, st))
			assert.Equal(t, s, gotS)
			assert.Equal(t, st, gotSt)
		}
	}
}

func TestThermostatTempEnabledInverse(t *testing.T) {
	th := NewThermostat(1)
	th.ApplyData(ModeOff, HoldInactive, FanAuto, 0, 70, 72, 40)
	assert.False(t, th.TempEnabled, "raw temp byte 0 means sensor absent")

	th.ApplyData(ModeHeat, HoldActive, FanAuto, 90, 70, 72, 40)
	assert.True(t, th.TempEnabled)
	assert.Equal(t, 50, th.TempF) // 90 - 40
}

func TestTaskPulse(t *testing.T) {
	tsk := NewTask(1)
	assert.False(t, tsk.On)

	now := time.Unix(100, 0)
	tsk.Activate(now)
	assert.True(t, tsk.On)

	assert.False(t, tsk.Expire(now.Add(500*time.Millisecond)), "still within grace period")
	assert.True(t, tsk.On)

	assert.True(t, tsk.Expire(now.Add(1100*time.Millisecond)))
	assert.False(t, tsk.On)
}

func TestX10LevelClassification(t *testing.T) {
	d := NewX10Device(0)
	d.ApplyLevel(0)
	assert.Equal(t, X10Off, d.Status)
	d.ApplyLevel(1)
	assert.Equal(t, X10On, d.Status)
	d.ApplyLevel(50)
	assert.Equal(t, X10Dimmed, d.Status)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewStore()
	s.Zones[3].Name = "Front Door"
	s.Zones[3].ApplyArea(2)
	s.Zones[3].ApplyNibble(PackNibble(ZoneOpen, ZoneNormal), time.Now())
	s.Zones[3].ApplyDefinition(DefinitionBurglar1)
	s.Zones[3].ApplyAlarm(0)
	s.Outputs[1].Name = "Siren"
	s.Outputs[1].ApplyState(true)
	s.Areas[2].ApplyArmingStatus(ArmedAway, FullyArmed, AlarmNone, time.Now(), nil)
	s.Thermostats[4].ApplyData(ModeCool, HoldActive, FanOn, 90, 68, 76, 45)
	s.X10[10].ApplyLevel(50)
	s.Counters[1].ApplyValue(42)
	s.Settings[1].ApplyValue(msg.SettingNumber, 7)

	data, err := s.MarshalSnapshot()
	require.NoError(t, err)

	restored := NewStore()
	require.NoError(t, restored.LoadSnapshot(data))

	assert.Equal(t, "Front Door", restored.Zones[3].Name)
	assert.Equal(t, 2, restored.Zones[3].Area)
	assert.True(t, restored.Zones[3].Enabled(), "restored entity keeps its known state across a snapshot")
	assert.Equal(t, ZoneOpen, restored.Zones[3].State)
	assert.Equal(t, DefinitionBurglar1, restored.Zones[3].Definition)

	assert.Equal(t, "Siren", restored.Outputs[1].Name)
	assert.True(t, restored.Outputs[1].On)

	assert.Equal(t, ArmedAway, restored.Areas[2].Status)
	assert.Equal(t, FullyArmed, restored.Areas[2].ArmUp)

	assert.Equal(t, ModeCool, restored.Thermostats[4].Mode)
	assert.Equal(t, HoldActive, restored.Thermostats[4].Hold)
	assert.Equal(t, 50, restored.Thermostats[4].TempF) // 90 - 40

	assert.Equal(t, X10Dimmed, restored.X10[10].Status)
	assert.Equal(t, 50, restored.X10[10].Level)

	assert.Equal(t, 42, restored.Counters[1].Value)
	assert.Equal(t, 7, restored.Settings[1].Value)

	freshZone := NewZone(9)
	assert.False(t, freshZone.Enabled(), "a zone that was never scanned before the snapshot stays unknown")
}

func TestReservedUserNames(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "Unused", s.Users[200].Name)
	assert.Equal(t, "Program Code", s.Users[201].Name)
	assert.Equal(t, "ELK RP", s.Users[202].Name)
	assert.Equal(t, "Quick Arm", s.Users[203].Name)
}
