package msg

// CounterCount is the fixed counter capacity (§3.1).
const CounterCount = 64

// CounterReplyMsg is the decoded payload of a CV frame.
type CounterReplyMsg struct {
	Counter int // 1-based counter number
	Value   int // 0..65535
}

// DecodeCounterReply decodes a CV payload "NN DDDDD".
func DecodeCounterReply(payload string) (CounterReplyMsg, error) {
	var m CounterReplyMsg
	if len(payload) < 7 {
		return m, ErrPayload
	}
	n, err := decimalField(payload, 0, 2)
	if err != nil {
		return m, err
	}
	v, err := decimalField(payload, 2, 5)
	if err != nil {
		return m, err
	}
	m.Counter = n
	m.Value = v
	return m, nil
}
