package msg

// ArmingStatusMsg is the decoded payload of an AS frame: one raw status,
// arm-up and alarm code per area (0-based index 0..7). Status and ArmUp
// use the true-hex dialect; Alarm uses fake-hex (§4.2).
type ArmingStatusMsg struct {
	Status [8]byte
	ArmUp  [8]byte
	Alarm  [8]byte
}

// DecodeArmingStatus decodes an AS payload "S[8] U[8] A[8]".
func DecodeArmingStatus(payload string) (ArmingStatusMsg, error) {
	var m ArmingStatusMsg
	if len(payload) < 24 {
		return m, ErrPayload
	}
	s, err := trueHexAll(payload[0:8])
	if err != nil {
		return m, err
	}
	u, err := trueHexAll(payload[8:16])
	if err != nil {
		return m, err
	}
	a, err := fakeHexAll(payload[16:24])
	if err != nil {
		return m, err
	}
	copy(m.Status[:], s)
	copy(m.ArmUp[:], u)
	copy(m.Alarm[:], a)
	return m, nil
}

// EntryExitMsg is the decoded payload of an EE frame.
type EntryExitMsg struct {
	Area      int  // 1-based area number
	Direction byte // 0 = entry, 1 = exit
	Timer1    int  // seconds
	Timer2    int  // seconds
	Status    byte // fake-hex status nibble
}

// DecodeEntryExit decodes an EE payload "A D ttt TTT S".
func DecodeEntryExit(payload string) (EntryExitMsg, error) {
	var m EntryExitMsg
	if len(payload) < 9 {
		return m, ErrPayload
	}
	area, err := strField(payload, 0)
	if err != nil {
		return m, err
	}
	dir, err := strField(payload, 1)
	if err != nil {
		return m, err
	}
	t1, err := decimalField(payload, 2, 3)
	if err != nil {
		return m, err
	}
	t2, err := decimalField(payload, 5, 3)
	if err != nil {
		return m, err
	}
	status, err := fakeHexField(payload, 8)
	if err != nil {
		return m, err
	}
	m.Area = int(area)
	m.Direction = dir
	m.Timer1 = t1
	m.Timer2 = t2
	m.Status = status
	return m, nil
}

// AlarmMemoryMsg is the decoded payload of an AM frame: one bit per area,
// per the authoritative revision named in §9 (a byte at position
// area_index, not a bitfield offset that shifts across revisions).
type AlarmMemoryMsg struct {
	Area [8]bool
}

// DecodeAlarmMemory decodes an AM payload "M[8]" (no reserved field).
func DecodeAlarmMemory(payload string) (AlarmMemoryMsg, error) {
	var m AlarmMemoryMsg
	if len(payload) < 8 {
		return m, ErrPayload
	}
	for i := 0; i < 8; i++ {
		v, err := strField(payload, i)
		if err != nil {
			return m, err
		}
		m.Area[i] = v != 0
	}
	return m, nil
}

func trueHexAll(s string) ([]byte, error) {
	out := make([]byte, len(s))
	for i := range s {
		v, err := trueHexField(s, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func fakeHexAll(s string) ([]byte, error) {
	out := make([]byte, len(s))
	for i := range s {
		v, err := fakeHexField(s, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
