package msg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArmingStatus(t *testing.T) {
	// areas 1 armed away (status 2 per panel enumeration), rest disarmed
	payload := "20000000" + "40000000" + "00000000"
	m, err := DecodeArmingStatus(payload)
	require.NoError(t, err)
	assert.EqualValues(t, 2, m.Status[0])
	assert.EqualValues(t, 4, m.ArmUp[0])
}

func TestDecodeUserCodeEntered(t *testing.T) {
	m, err := DecodeUserCodeEntered("000000000000" + "005" + "02")
	require.NoError(t, err)
	assert.Equal(t, 5, m.User)
	assert.Equal(t, 2, m.Keypad)
	assert.False(t, m.Invalid())
}

func TestUserCodeInvalidSentinel(t *testing.T) {
	m, err := DecodeUserCodeEntered("123456789012" + "000" + "01")
	require.NoError(t, err)
	assert.True(t, m.Invalid())
}

func TestZoneUpdateRoundTrip(t *testing.T) {
	// Scenario 6: zone 5, nibble 'C' = 12 -> state=0, status=3
	m, err := DecodeZoneUpdate("005C")
	require.NoError(t, err)
	assert.Equal(t, 5, m.Zone)
	assert.EqualValues(t, 12, m.Nibble)
	assert.Equal(t, "005C", EncodeZoneUpdate(m))
}

func TestPLCStatusBank(t *testing.T) {
	payload := "1" + "00" + "5" + repeat("0", 61)
	m, err := DecodePLCStatus(payload)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Bank)
	assert.EqualValues(t, 5, m.Level[2])
}

func TestHouseUnitIndexBijection(t *testing.T) {
	for h := byte('A'); h <= 'P'; h++ {
		for u := 1; u <= 16; u++ {
			idx, err := HouseUnitToIndex(h, u)
			require.NoError(t, err)
			gotH, gotU, err := IndexToHouseUnit(idx)
			require.NoError(t, err)
			assert.Equal(t, h, gotH)
			assert.Equal(t, u, gotU)
		}
	}
}

func TestDecodeValueReadBatch(t *testing.T) {
	group := "000001"
	payload := "00"
	for i := 0; i < CustomSettingCount; i++ {
		payload += group
	}
	m, err := DecodeValueRead(payload)
	require.NoError(t, err)
	require.Len(t, m.Entries, CustomSettingCount)
	assert.Equal(t, 0, m.Entries[0].Value)
	assert.Equal(t, SettingTimerSeconds, m.Entries[0].Format)
}

func TestDecodeValueReadSingle(t *testing.T) {
	m, err := DecodeValueRead("05" + "00123" + "0")
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, 5, m.Entries[0].Setting)
	assert.Equal(t, 123, m.Entries[0].Value)
}

func TestArmKindEncodesColonForLevelTen(t *testing.T) {
	k := ArmKind(ArmForceStay)
	assert.Equal(t, Kind("a:"), k)
}

func TestDecodeDescriptionTrimsPadding(t *testing.T) {
	m, err := DecodeDescription("00" + "001" + "Front Door      ")
	require.NoError(t, err)
	assert.Equal(t, DescribeZone, m.Type)
	assert.Equal(t, 1, m.Number)
	assert.Equal(t, "Front Door", m.Name)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
