package msg

// ThermostatCount is the fixed thermostat capacity (§3.1).
const ThermostatCount = 16

// TempGroup identifies which entity kind a ST temperature reply refers
// to (§4.4 routing: "ST(group g, n)").
type TempGroup byte

const (
	TempGroupZone       TempGroup = 0 // zones 1..16
	TempGroupKeypad     TempGroup = 1 // keypad n
	TempGroupThermostat TempGroup = 2 // thermostat n
)

// TempReplyMsg is the decoded payload of an ST frame. Raw is the wire
// value before the -40/-60 °F offset from §8 is applied; the entity
// layer knows which offset applies to which group.
type TempReplyMsg struct {
	Group TempGroup
	Index int
	Raw   int
}

// DecodeTempReply decodes an ST payload "G NN DDD".
func DecodeTempReply(payload string) (TempReplyMsg, error) {
	var m TempReplyMsg
	if len(payload) < 6 {
		return m, ErrPayload
	}
	g, err := strField(payload, 0)
	if err != nil {
		return m, err
	}
	idx, err := decimalField(payload, 1, 2)
	if err != nil {
		return m, err
	}
	raw, err := decimalField(payload, 3, 3)
	if err != nil {
		return m, err
	}
	m.Group = TempGroup(g)
	m.Index = idx
	m.Raw = raw
	return m, nil
}

// ThermostatDataMsg is the decoded payload of a TR frame.
type ThermostatDataMsg struct {
	Thermostat  int
	Mode        byte
	Hold        byte
	Fan         byte
	Temp        int
	SetpointHeat int
	SetpointCool int
	Humidity    int
}

// DecodeThermostatData decodes a TR payload "NN M H F TT HH SS UU".
func DecodeThermostatData(payload string) (ThermostatDataMsg, error) {
	var m ThermostatDataMsg
	if len(payload) < 13 {
		return m, ErrPayload
	}
	n, err := decimalField(payload, 0, 2)
	if err != nil {
		return m, err
	}
	mode, err := strField(payload, 2)
	if err != nil {
		return m, err
	}
	hold, err := strField(payload, 3)
	if err != nil {
		return m, err
	}
	fan, err := strField(payload, 4)
	if err != nil {
		return m, err
	}
	temp, err := decimalField(payload, 5, 2)
	if err != nil {
		return m, err
	}
	heat, err := decimalField(payload, 7, 2)
	if err != nil {
		return m, err
	}
	cool, err := decimalField(payload, 9, 2)
	if err != nil {
		return m, err
	}
	humidity, err := decimalField(payload, 11, 2)
	if err != nil {
		return m, err
	}
	m.Thermostat = n
	m.Mode = mode
	m.Hold = hold
	m.Fan = fan
	m.Temp = temp
	m.SetpointHeat = heat
	m.SetpointCool = cool
	m.Humidity = humidity
	return m, nil
}
