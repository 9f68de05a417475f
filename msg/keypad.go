package msg

// KeypadCount is the fixed keypad capacity (§3.1).
const KeypadCount = 16

// KeypadAreaMsg is the decoded payload of a KA frame: one fake-hex area
// assignment per keypad.
type KeypadAreaMsg struct {
	Area [KeypadCount]byte
}

// DecodeKeypadArea decodes a KA payload "K[16]".
func DecodeKeypadArea(payload string) (KeypadAreaMsg, error) {
	var m KeypadAreaMsg
	if len(payload) < KeypadCount {
		return m, ErrPayload
	}
	v, err := fakeHexAll(payload[:KeypadCount])
	if err != nil {
		return m, err
	}
	copy(m.Area[:], v)
	return m, nil
}

// KeypadStatusMsg is the decoded payload of a KC frame.
type KeypadStatusMsg struct {
	Keypad     int      // 1-based keypad number
	LastKey    int      // last key pressed
	Illum      [6]byte  // function-key illumination, true hex
	Chime      byte     // chime mode for the keypad's area
	BypassArea [8]byte  // bypass state per area, fake hex
}

// DecodeKeypadStatus decodes a KC payload "NN DD L[6] C P[8]".
func DecodeKeypadStatus(payload string) (KeypadStatusMsg, error) {
	var m KeypadStatusMsg
	if len(payload) < 19 {
		return m, ErrPayload
	}
	kp, err := decimalField(payload, 0, 2)
	if err != nil {
		return m, err
	}
	key, err := decimalField(payload, 2, 2)
	if err != nil {
		return m, err
	}
	illum, err := trueHexAll(payload[4:10])
	if err != nil {
		return m, err
	}
	chime, err := strField(payload, 10)
	if err != nil {
		return m, err
	}
	bypass, err := fakeHexAll(payload[11:19])
	if err != nil {
		return m, err
	}
	m.Keypad = kp
	m.LastKey = key
	copy(m.Illum[:], illum)
	m.Chime = chime
	copy(m.BypassArea[:], bypass)
	return m, nil
}

// UserCodeEnteredMsg is the decoded payload of an IC frame.
type UserCodeEnteredMsg struct {
	FailedCode string // 12 ASCII digits, all zero when the code was valid
	User       int    // 1-based user number, 0 means invalid code (§4.2)
	Keypad     int    // 1-based keypad number
}

// DecodeUserCodeEntered decodes an IC payload "F[12] U[3] K[2]".
func DecodeUserCodeEntered(payload string) (UserCodeEnteredMsg, error) {
	var m UserCodeEnteredMsg
	if len(payload) < 17 {
		return m, ErrPayload
	}
	for i := 0; i < 12; i++ {
		if payload[i] < '0' || payload[i] > '9' {
			return m, ErrPayload
		}
	}
	user, err := decimalField(payload, 12, 3)
	if err != nil {
		return m, err
	}
	kp, err := decimalField(payload, 15, 2)
	if err != nil {
		return m, err
	}
	m.FailedCode = payload[0:12]
	m.User = user
	m.Keypad = kp
	return m, nil
}

// Invalid reports whether the entered code did not match any user (§4.2:
// user number 0 is a distinguished "invalid" sentinel, never a real
// 0-based user).
func (m UserCodeEnteredMsg) Invalid() bool {
	return m.User == 0
}
