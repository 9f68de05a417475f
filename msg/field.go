package msg

import (
	"fmt"

	"github.com/BioSehnsucht/pyelk/frame"
	"github.com/pkg/errors"
)

// ErrPayload signals a payload that does not fit the expected field
// widths for its kind.
var ErrPayload = errors.New("msg: payload does not match expected field layout")

// decimalField parses a fixed-width ASCII decimal field at data[off:off+width].
func decimalField(data string, off, width int) (int, error) {
	if off+width > len(data) {
		return 0, errors.Wrapf(ErrPayload, "decimal field at %d..%d, payload %q", off, off+width, data)
	}
	n := 0
	for i := off; i < off+width; i++ {
		c := data[i]
		if c < '0' || c > '9' {
			return 0, errors.Wrapf(ErrPayload, "non-decimal digit %q at offset %d", c, i)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// encodeDecimalField formats n as a fixed-width, zero-padded ASCII decimal
// field.
func encodeDecimalField(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// strField decodes a single ASCII character field via the "str" dialect:
// the character's value is itself, i.e. c - '0' for digits, used for
// fields documented in §4.2 as plain decimal/boolean characters.
func strField(data string, off int) (byte, error) {
	if off >= len(data) {
		return 0, errors.Wrapf(ErrPayload, "str field at %d, payload %q", off, data)
	}
	c := data[off]
	if c < '0' || c > '9' {
		return 0, errors.Wrapf(ErrPayload, "non-decimal str digit %q at offset %d", c, off)
	}
	return c - '0', nil
}

// trueHexField decodes one true-hex nibble at offset off.
func trueHexField(data string, off int) (byte, error) {
	if off >= len(data) {
		return 0, errors.Wrapf(ErrPayload, "true hex field at %d, payload %q", off, data)
	}
	out, err := frame.DehexTrue(data[off : off+1])
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// fakeHexField decodes one fake-hex value at offset off.
func fakeHexField(data string, off int) (byte, error) {
	if off >= len(data) {
		return 0, errors.Wrapf(ErrPayload, "fake hex field at %d, payload %q", off, data)
	}
	out, err := frame.DehexFake(data[off : off+1])
	if err != nil {
		return 0, err
	}
	return out[0], nil
}
