package frame

import "github.com/pkg/errors"

// ErrDehex signals a character outside the expected dialect's alphabet.
var ErrDehex = errors.New("frame: character outside dehex alphabet")

// DehexTrue decodes the "true hex" dialect: each character yields a 4 bit
// nibble, 0-9 for '0'-'9' and 10-15 for 'A'-'F'.
func DehexTrue(s string) ([]byte, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			out[i] = c - '0'
		case c >= 'A' && c <= 'F':
			out[i] = c - 'A' + 10
		default:
			return nil, errors.Wrapf(ErrDehex, "true hex: %q at offset %d", c, i)
		}
	}
	return out, nil
}

// DehexFake decodes the "fake hex" dialect used where the panel needed a
// wider alphabet to carry small positive integers past 9 in one
// character: every character maps to `c - '0'`, so '0'..'9' are 0..9 and
// the alphabet continues unbroken through ':' (10), ';' (11), and on into
// the uppercase range ('A' = 17).
func DehexFake(s string) ([]byte, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > 'z' {
			return nil, errors.Wrapf(ErrDehex, "fake hex: %q at offset %d", c, i)
		}
		out[i] = c - '0'
	}
	return out, nil
}

// HexTrue encodes a single nibble (0..15) in the true-hex alphabet.
func HexTrue(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'A' + (n - 10)
}

// HexFake encodes a single value (0..74, the printable ASCII range above
// '0') in the fake-hex alphabet.
func HexFake(n byte) byte {
	return '0' + n
}
