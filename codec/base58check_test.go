package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase58CheckRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	encoded := Base58CheckEncode(140, payload)

	gotPayload, gotVersion, err := Base58CheckDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, gotPayload)
	assert.Equal(t, byte(140), gotVersion)
}

func TestBase58CheckDecodeRejectsBadChecksum(t *testing.T) {
	encoded := Base58CheckEncode(140, []byte{1, 2, 3})
	corrupted := encoded[:len(encoded)-1] + "1"
	_, _, err := Base58CheckDecode(corrupted)
	assert.Error(t, err)
}

func TestHexRoundTrip(t *testing.T) {
	b := []byte{0xde, 0xad, 0xbe, 0xef}
	s := EncodeHex(b)
	assert.Equal(t, "deadbeef", s)

	got, err := DecodeHex(s)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestDecodeHexRejectsOddLength(t *testing.T) {
	_, err := DecodeHex("abc")
	assert.Error(t, err)
}

func TestReverse(t *testing.T) {
	assert.Equal(t, []byte{3, 2, 1}, Reverse([]byte{1, 2, 3}))
	assert.Equal(t, []byte{}, Reverse([]byte{}))
}
