// Package frame implements the Elk M1 ASCII line framing: length field,
// checksum and the one reserved-field exception. See the panel's ASCII
// protocol description, message layout "LL TT D* RR CC".
package frame

import (
	"fmt"

	"github.com/pkg/errors"
)

// Frame is a single decoded packet, one per line on the wire.
type Frame struct {
	Kind    string // two-character message tag, e.g. "AS", "zp", "XK"
	Payload []byte // D*, still ASCII, not yet dehexed

	// Reserved carries RR verbatim. Empty for the AM exception, which
	// has no reserved field at all.
	Reserved string
}

// NoReserved is the message kind that omits the RR field entirely.
const NoReserved = "AM"

// ErrMalformed signals a frame whose length field does not match the
// actual line length.
var ErrMalformed = errors.New("frame: malformed length field")

// ErrChecksum signals a frame whose checksum does not verify.
var ErrChecksum = errors.New("frame: checksum mismatch")

// ErrShort signals a line too short to hold a valid frame.
var ErrShort = errors.New("frame: line shorter than minimum frame size")

// minimum: LL(2) TT(2) RR(2) CC(2)
const minLineLen = 8

// checksum computes `((sum of bytes mod 256) xor 0xFF) + 1`, truncated to
// an 8 bit value, over data.
func checksum(data []byte) byte {
	var sum byte
	for _, c := range data {
		sum += c
	}
	return (sum ^ 0xFF) + 1
}

// Encode assembles a wire frame for kind and payload (already encoded as
// ASCII, e.g. by the msg package's Encode helpers). Reserved is
// written as "00" unless kind is NoReserved, in which case the RR field
// is omitted entirely.
func Encode(kind string, payload []byte) (string, error) {
	if len(kind) != 2 {
		return "", errors.Errorf("frame: kind %q is not two characters", kind)
	}

	body := kind + string(payload)
	if kind != NoReserved {
		body += "00"
	}

	length := len(body) + 2 // + CC
	if length > 0xFF {
		return "", errors.Errorf("frame: encoded body too large (%d bytes)", length)
	}

	head := fmt.Sprintf("%02X%s", length, body)
	cc := checksum([]byte(head))
	return fmt.Sprintf("%s%02X", head, cc), nil
}

// Decode parses a single CR-LF-stripped line into a Frame. Malformed
// length fields and checksum mismatches are reported as errors; callers
// MUST drop the frame and must not propagate the error upward as a fatal
// condition (§4.1 "Failure modes").
func Decode(line string) (Frame, error) {
	if len(line) < minLineLen {
		return Frame{}, ErrShort
	}

	length, err := parseHexByteLen(line[0:2])
	if err != nil {
		return Frame{}, errors.Wrap(ErrMalformed, err.Error())
	}
	if length != len(line)-2 {
		return Frame{}, errors.Wrapf(ErrMalformed, "length field %d, actual %d", length, len(line)-2)
	}

	body := line[:len(line)-2]
	wantCC := line[len(line)-2:]
	gotCC := fmt.Sprintf("%02X", checksum([]byte(body)))
	if gotCC != wantCC {
		return Frame{}, errors.Wrapf(ErrChecksum, "got %s want %s", gotCC, wantCC)
	}

	rest := line[2 : len(line)-2] // TT..RR, checksum stripped
	if len(rest) < 2 {
		return Frame{}, ErrShort
	}
	kind := rest[0:2]
	rest = rest[2:]

	f := Frame{Kind: kind}
	if kind == NoReserved {
		f.Payload = []byte(rest)
		return f, nil
	}
	if len(rest) < 2 {
		return Frame{}, ErrShort
	}
	f.Payload = []byte(rest[:len(rest)-2])
	f.Reserved = rest[len(rest)-2:]
	return f, nil
}

func parseHexByteLen(s string) (int, error) {
	n := 0
	for _, c := range s {
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'A' && c <= 'F':
			v = int(c-'A') + 10
		default:
			return 0, errors.Errorf("non-hex length digit %q", c)
		}
		n = n*16 + v
	}
	return n, nil
}
