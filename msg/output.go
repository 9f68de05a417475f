package msg

// OutputCount is the fixed output capacity (§3.1).
const OutputCount = 208

// OutputUpdateMsg is the decoded payload of a CC frame.
type OutputUpdateMsg struct {
	Output int  // 1-based output number
	On     bool
}

// DecodeOutputUpdate decodes a CC payload "ZZZ S".
func DecodeOutputUpdate(payload string) (OutputUpdateMsg, error) {
	var m OutputUpdateMsg
	if len(payload) < 4 {
		return m, ErrPayload
	}
	out, err := decimalField(payload, 0, 3)
	if err != nil {
		return m, err
	}
	status, err := strField(payload, 3)
	if err != nil {
		return m, err
	}
	m.Output = out
	m.On = status != 0
	return m, nil
}

// OutputStatusMsg is the decoded payload of a CS frame: one fake-hex
// on/off flag per output.
type OutputStatusMsg struct {
	On [OutputCount]bool
}

// DecodeOutputStatus decodes a CS payload "D[208]" (fake hex).
func DecodeOutputStatus(payload string) (OutputStatusMsg, error) {
	var m OutputStatusMsg
	if len(payload) < OutputCount {
		return m, ErrPayload
	}
	v, err := fakeHexAll(payload[:OutputCount])
	if err != nil {
		return m, err
	}
	for i, b := range v {
		m.On[i] = b != 0
	}
	return m, nil
}
