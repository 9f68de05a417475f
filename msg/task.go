package msg

// TaskCount is the fixed task capacity (§3.1).
const TaskCount = 32

// TaskUpdateMsg is the decoded payload of a TC frame.
type TaskUpdateMsg struct {
	Task   int // 1-based task number
	Result byte
}

// DecodeTaskUpdate decodes a TC payload "NNN R".
func DecodeTaskUpdate(payload string) (TaskUpdateMsg, error) {
	var m TaskUpdateMsg
	if len(payload) < 4 {
		return m, ErrPayload
	}
	task, err := decimalField(payload, 0, 3)
	if err != nil {
		return m, err
	}
	result, err := strField(payload, 3)
	if err != nil {
		return m, err
	}
	m.Task = task
	m.Result = result
	return m, nil
}
