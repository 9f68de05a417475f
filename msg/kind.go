// Package msg defines the Elk M1 message catalogue: a closed enumeration
// of two-character tags and typed accessors for the payload of each kind
// the runtime understands natively. Kinds outside the table are opaque
// pass-throughs (§4.2).
package msg

// Kind is the two-character message tag from the TT field of a frame.
type Kind string

// Message kinds with native decode support. Most are request/reply pairs;
// lower-case tags are requests, upper-case are the matching replies,
// following the panel's own convention.
const (
	ArmingStatus      Kind = "AS" // arming status report
	AlarmByZone       Kind = "AZ" // alarm-by-zone report
	AlarmMemory       Kind = "AM" // alarm memory (no reserved field)
	EntryExitTimer    Kind = "EE" // entry/exit timer update
	UserCodeEntered   Kind = "IC" // user code entered at a keypad
	KeypadAreaReply   Kind = "KA" // keypad area assignment reply
	KeypadAreaRequest Kind = "ka" // keypad area assignment request
	KeypadStatus      Kind = "KC" // keypad status update
	TempRequestReply  Kind = "ST" // temperature probe reply
	ThermostatData    Kind = "TR" // thermostat data reply
	Omnistat2Data     Kind = "T2" // embedded Omnistat2 data reply
	TaskUpdate        Kind = "TC" // task (momentary) update
	OutputUpdate      Kind = "CC" // output state change
	OutputStatus      Kind = "CS" // output status report (all outputs)
	ZoneUpdate        Kind = "ZC" // zone state change
	ZoneStatus        Kind = "ZS" // zone status report (all zones)
	ZoneDefinition    Kind = "ZD" // zone definition reply (all zones)
	ZonePartition     Kind = "ZP" // zone partition (area) report
	ZoneVoltage       Kind = "ZV" // zone voltage reply
	PLCChange         Kind = "PC" // X10/PLC level change
	PLCStatus         Kind = "PS" // X10/PLC status reply (one bank)
	CounterReply      Kind = "CV" // counter value reply
	ValueRead         Kind = "CR" // custom setting read reply
	VersionReply      Kind = "VN" // firmware/module version reply
	DescriptionReply  Kind = "SD" // text description reply
	EthernetHeartbeat Kind = "XK" // M1XEP heartbeat
	InstallerExit     Kind = "IE" // installer-mode exit notice
	ElkRPStatus       Kind = "RP" // ElkRP connect/disconnect status
)

// ArmRequestPrefix is the first character of the arm-command request
// family. The panel encodes the arm level as the second character using
// the fake-hex alphabet, so the full tag ranges over "a0".."a:" and
// beyond — "a:" is a legal tag, not a malformed one (§4.2 odd cases).
const ArmRequestPrefix = 'a'

// IsArmRequest reports whether k belongs to the "a?" arm-command family.
func IsArmRequest(k Kind) bool {
	return len(k) == 2 && k[0] == ArmRequestPrefix
}

// Bare request tags with no native reply decode of their own: the panel
// answers each with the matching upper-case kind above. Used by the
// scanner (§4.7) to drive the initial full-state pull.
const (
	ZoneStatusRequest       Kind = "zs"
	ZoneDefinitionRequest   Kind = "zd"
	ZonePartitionRequest    Kind = "zp"
	ArmingStatusRequest     Kind = "as"
	AlarmByZoneRequest      Kind = "az"
	OutputStatusRequest     Kind = "cs"
	PLCStatusRequest        Kind = "ps"
	VersionRequest          Kind = "vn"
	KeypadStatusRequest     Kind = "kc"
	DescriptionRequest      Kind = "sd"
)

// RescanBlacklist holds the kinds the scanner consumes directly via
// explicit waits during startup (§4.4). The dispatcher does not consult
// this map: a frame of any kind goes to a registered wait for that kind,
// and ZD/ZS frames arriving with no wait registered are auto-processed
// like the rest of AutoProcessSet.
var RescanBlacklist = map[Kind]bool{
	ZoneDefinition: true,
	ZoneStatus:     true,
}

// AutoProcessSet holds the kinds dispatched outside of an active rescan
// wait (§4.4). SD is included because the scanner waits on it only during
// its description phases; SD frames arriving outside those waits are
// applied by the dispatcher.
var AutoProcessSet = map[Kind]bool{
	AlarmMemory:       true,
	ArmingStatus:      true,
	AlarmByZone:       true,
	OutputUpdate:      true,
	ValueRead:         true,
	OutputStatus:      true,
	CounterReply:      true,
	EntryExitTimer:    true,
	UserCodeEntered:   true,
	InstallerExit:     true,
	KeypadAreaReply:   true,
	KeypadStatus:      true,
	PLCChange:         true,
	PLCStatus:         true,
	ElkRPStatus:       true,
	DescriptionReply:  true,
	Omnistat2Data:     true,
	TaskUpdate:        true,
	ThermostatData:    true,
	TempRequestReply:  true,
	VersionReply:      true,
	EthernetHeartbeat: true,
	ZoneUpdate:        true,
	ZoneDefinition:    true,
	ZonePartition:     true,
	ZoneStatus:        true,
}
