package msg

import "strings"

// VersionMsg is the decoded payload of a VN frame.
type VersionMsg struct {
	PanelMajor, PanelMinor, PanelBuild int
	XEPMajor, XEPMinor, XEPBuild       int
}

// DecodeVersion decodes a VN payload "UU MM LL uu mm ll 0[36]".
func DecodeVersion(payload string) (VersionMsg, error) {
	var m VersionMsg
	if len(payload) < 12 {
		return m, ErrPayload
	}
	var err error
	if m.PanelMajor, err = decimalField(payload, 0, 2); err != nil {
		return m, err
	}
	if m.PanelMinor, err = decimalField(payload, 2, 2); err != nil {
		return m, err
	}
	if m.PanelBuild, err = decimalField(payload, 4, 2); err != nil {
		return m, err
	}
	if m.XEPMajor, err = decimalField(payload, 6, 2); err != nil {
		return m, err
	}
	if m.XEPMinor, err = decimalField(payload, 8, 2); err != nil {
		return m, err
	}
	if m.XEPBuild, err = decimalField(payload, 10, 2); err != nil {
		return m, err
	}
	return m, nil
}

// DescriptionType identifies which entity catalogue a description reply
// belongs to, per the type codes the scanner requests with (§4.7).
type DescriptionType int

const (
	DescribeZone DescriptionType = iota
	DescribeArea
	DescribeKeypad
	DescribeOutput
	DescribeTask
	DescribeTelephone
	DescribeLight // X10/PLC device
	DescribeAlarmDuration
	DescribeCustomSetting
	DescribeCounter
	DescribeThermostat
	DescribeUser
)

// DescriptionMsg is the decoded payload of an SD frame.
type DescriptionMsg struct {
	Type   DescriptionType
	Number int // 1-based, may be > requested index (skip-empty traversal, §4.7)
	Name   string
}

// DecodeDescription decodes an SD payload "TT NNN A[16]".
func DecodeDescription(payload string) (DescriptionMsg, error) {
	var m DescriptionMsg
	if len(payload) < 21 {
		return m, ErrPayload
	}
	t, err := decimalField(payload, 0, 2)
	if err != nil {
		return m, err
	}
	n, err := decimalField(payload, 2, 3)
	if err != nil {
		return m, err
	}
	m.Type = DescriptionType(t)
	m.Number = n
	m.Name = strings.TrimRight(payload[5:21], " \x00")
	return m, nil
}
