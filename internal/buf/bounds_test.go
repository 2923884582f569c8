package buf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSub(t *testing.T) {
	b := []byte{0, 1, 2, 3, 4, 5}

	got, err := Sub(b, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 4}, got)

	_, err = Sub(b, 4, 3)
	require.Error(t, err)
	var oob *OutOfBounds
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, 4, oob.Offset)
	assert.Equal(t, 3, oob.Needed)

	_, err = Sub(b, -1, 1)
	require.Error(t, err)

	_, err = Sub(b, 0, -1)
	require.Error(t, err)

	// Overflow: off+n must not wrap around to a small positive number.
	_, err = Sub(b, 1<<62, 1<<62)
	require.Error(t, err)
}

func TestHas(t *testing.T) {
	b := make([]byte, 8)
	assert.True(t, Has(b, 0, 8))
	assert.True(t, Has(b, 4, 4))
	assert.False(t, Has(b, 4, 5))
}

func TestLeadingSub(t *testing.T) {
	b := []byte{1, 2, 3}

	got, ok := LeadingSub(b, 2)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2}, got)

	_, ok = LeadingSub(b, 4)
	assert.False(t, ok)

	got, ok = LeadingSub(b, 0)
	require.True(t, ok)
	assert.Empty(t, got)
}
