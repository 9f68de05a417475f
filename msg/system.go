package msg

// ElkRPState is the decoded payload of an RP frame (§3.3 "Runtime
// state").
type ElkRPState byte

const (
	ElkRPDisconnected ElkRPState = 0
	ElkRPConnected    ElkRPState = 1
	ElkRPConnecting   ElkRPState = 2
)

// DecodeElkRPStatus decodes an RP payload "S".
func DecodeElkRPStatus(payload string) (ElkRPState, error) {
	if len(payload) < 1 {
		return 0, ErrPayload
	}
	v, err := strField(payload, 0)
	if err != nil {
		return 0, err
	}
	if v > 2 {
		return 0, ErrPayload
	}
	return ElkRPState(v), nil
}
