package entity

// Display text tables, grounded on PyElk/Area/__init__.py's STATUS_STR,
// ARM_UP_STR and ALARM_STR dictionaries.

var areaStatusText = map[AreaStatus]string{
	Disarmed:          "Disarmed",
	ArmedAway:         "Armed Away",
	ArmedStay:         "Armed Stay",
	ArmedStayInstant:  "Armed Stay Instant",
	ArmedNight:        "Armed to Night",
	ArmedNightInstant: "Armed to Night Instant",
	ArmedVacation:     "Armed to Vacation",
	AlarmPending:      "Alarm Pending",
	AlarmTriggered:    "Alarm Triggered",
	EntryTimerRunning: "Entry Timer Running",
	ExitTimerRunning:  "Exit Timer Running",
}

// String returns the display text for s, or "Unknown" for an
// out-of-table value.
func (s AreaStatus) String() string {
	if t, ok := areaStatusText[s]; ok {
		return t
	}
	return "Unknown"
}

var armUpText = map[ArmUpStatus]string{
	NotReady:            "Not Ready To Arm",
	Ready:                "Ready To Arm",
	ReadyViolatedBypass:  "Ready To Arm, but a zone is violated and can be Force Armed",
	ArmedExitTimer:       "Armed with Exit Timer working",
	FullyArmed:           "Armed Fully",
	ForceArmedViolated:   "Force Armed with a force arm zone violated",
	ArmedBypass:          "Armed with a bypass",
}

// String returns the display text for s.
func (s ArmUpStatus) String() string {
	if t, ok := armUpText[s]; ok {
		return t
	}
	return "Unknown"
}

var alarmKindText = map[AlarmKind]string{
	AlarmNone:               "No Alarm Active",
	AlarmEntranceDelay:      "Entrance Delay is Active",
	AlarmAbortDelay:         "Alarm Abort Delay Active",
	AlarmFullFire:           "Fire Alarm",
	AlarmFullMedical:        "Medical Alarm",
	AlarmFullPolice:         "Police Alarm",
	AlarmFullBurglar:        "Burglar Alarm",
	AlarmFullAux1:           "Aux 1 Alarm",
	AlarmFullAux2:           "Aux 2 Alarm",
	AlarmFullAux3:           "Aux 3 Alarm",
	AlarmFullAux4:           "Aux 4 Alarm",
	AlarmFullCarbonMonoxide: "Carbon Monoxide Alarm",
	AlarmFullEmergency:      "Emergency Alarm",
	AlarmFullFreeze:         "Freeze Alarm",
	AlarmFullGas:            "Gas Alarm",
	AlarmFullHeat:           "Heat Alarm",
	AlarmFullWater:          "Water Alarm",
	AlarmFullFireSupervisory: "Fire Supervisory",
	AlarmFullFireVerify:     "Verify Fire",
}

// String returns the display text for k.
func (k AlarmKind) String() string {
	if t, ok := alarmKindText[k]; ok {
		return t
	}
	return "Unknown"
}

var zoneInputStateText = map[ZoneInputState]string{
	ZoneUnconfigured: "Unconfigured",
	ZoneOpen:         "Open",
	ZoneEOL:          "EOL",
	ZoneShort:        "Short",
}

// String returns the display text for s.
func (s ZoneInputState) String() string {
	if t, ok := zoneInputStateText[s]; ok {
		return t
	}
	return "Unknown"
}

var zoneStatusText = map[ZoneStatus]string{
	ZoneNormal:    "Normal",
	ZoneTrouble:   "Trouble",
	ZoneViolated:  "Violated",
	ZoneBypassed:  "Bypassed",
}

// String returns the display text for s.
func (s ZoneStatus) String() string {
	if t, ok := zoneStatusText[s]; ok {
		return t
	}
	return "Unknown"
}
