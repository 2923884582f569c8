package buf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU16LE(t *testing.T) {
	b := []byte{0x34, 0x12}
	v, err := U16LE(b, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)

	_, err = U16LE(b, 1)
	require.Error(t, err)
}

func TestU32LE(t *testing.T) {
	b := []byte{0x78, 0x56, 0x34, 0x12}
	v, err := U32LE(b, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)
}

func TestI32LENegative(t *testing.T) {
	// -16 as a little-endian int32: 0xFFFFFFF0
	b := []byte{0xF0, 0xFF, 0xFF, 0xFF}
	v, err := I32LE(b, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(-16), v)
}

func TestU64LE(t *testing.T) {
	b := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	v, err := U64LE(b, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<64-1), v)
}

func TestU32BE(t *testing.T) {
	// The on-disk bytes for REG_DWORD 42 are little-endian (2A 00 00 00);
	// read as big-endian they decode to 42 << 24.
	b := []byte{0x2A, 0x00, 0x00, 0x00}
	v, err := U32BE(b, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(42<<24), v)
}
