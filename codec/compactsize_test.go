package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactSizeRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, 1 << 40}
	for _, n := range cases {
		buf := WriteCompactSize(nil, n)
		got, consumed, err := ReadCompactSize(buf)
		require.NoError(t, err)
		assert.Equal(t, n, got)
		assert.Equal(t, len(buf), consumed)
	}
}

func TestCompactSizeEncodingWidth(t *testing.T) {
	assert.Len(t, WriteCompactSize(nil, 0xfc), 1)
	assert.Len(t, WriteCompactSize(nil, 0xfd), 3)
	assert.Len(t, WriteCompactSize(nil, 0x10000), 5)
	assert.Len(t, WriteCompactSize(nil, 0x100000000), 9)
}

func TestVarBytesRoundTrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	buf := WriteVarBytes(nil, data)
	got, consumed, err := ReadVarBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, len(buf), consumed)
}

func TestReadCompactSizeShortBuffer(t *testing.T) {
	_, _, err := ReadCompactSize(nil)
	assert.Error(t, err)
}
