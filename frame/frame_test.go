package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		kind    string
		payload string
	}{
		{"AS", "22222222000000004444444400000000"},
		{"ZC", "0050C"},
		{"XK", ""},
		{"a:", "1"},
	}

	for _, c := range cases {
		line, err := Encode(c.kind, []byte(c.payload))
		require.NoError(t, err)

		f, err := Decode(line)
		require.NoError(t, err, "decode(%q)", line)
		assert.Equal(t, c.kind, f.Kind)
		assert.Equal(t, c.payload, string(f.Payload))
		assert.Equal(t, "00", f.Reserved)
	}
}

func TestEncodeDecodeAMOmitsReserved(t *testing.T) {
	line, err := Encode("AM", []byte("00000001"))
	require.NoError(t, err)

	f, err := Decode(line)
	require.NoError(t, err)
	assert.Equal(t, "AM", f.Kind)
	assert.Equal(t, "00000001", string(f.Payload))
	assert.Empty(t, f.Reserved)
}

func TestDecodeLengthField(t *testing.T) {
	line, err := Encode("ZS", []byte("0123456789"))
	require.NoError(t, err)
	// LL must equal len(line) - 2
	require.Equal(t, len(line)-2, mustParseLen(t, line[:2]))
}

func mustParseLen(t *testing.T, s string) int {
	t.Helper()
	n, err := parseHexByteLen(s)
	require.NoError(t, err)
	return n
}

func TestDecodeBadChecksum(t *testing.T) {
	line, err := Encode("ZC", []byte("0050C"))
	require.NoError(t, err)

	// flip the last checksum digit
	tampered := line[:len(line)-1] + flipHexDigit(line[len(line)-1])
	_, err = Decode(tampered)
	assert.ErrorIs(t, err, ErrChecksum)
}

func flipHexDigit(c byte) string {
	if c == '0' {
		return "1"
	}
	return "0"
}

func TestDecodeMalformedLength(t *testing.T) {
	_, err := Decode("FFAS0000000")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeShortLine(t *testing.T) {
	_, err := Decode("0A")
	assert.ErrorIs(t, err, ErrShort)
}

func TestDehexTrue(t *testing.T) {
	got, err := DehexTrue("0050C")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 5, 0, 12}, got)
}

func TestDehexTrueRejectsOutOfAlphabet(t *testing.T) {
	_, err := DehexTrue("0G")
	assert.ErrorIs(t, err, ErrDehex)
}

func TestDehexFake(t *testing.T) {
	got, err := DehexFake("0123456789:;<")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, got)
}

func TestHexRoundTrip(t *testing.T) {
	for n := byte(0); n < 16; n++ {
		decoded, err := DehexTrue(string(HexTrue(n)))
		require.NoError(t, err)
		assert.Equal(t, n, decoded[0])
	}
	for n := byte(0); n < 40; n++ {
		decoded, err := DehexFake(string(HexFake(n)))
		require.NoError(t, err)
		assert.Equal(t, n, decoded[0])
	}
}
