package hive

import (
	"testing"

	"github.com/regcore/nthive/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNKRejectsBadSignature(t *testing.T) {
	payload := make([]byte, format.NKFixedHeaderSize)
	payload[0], payload[1] = 'x', 'y'
	_, err := ParseNK(payload)
	require.Error(t, err)
	var sigErr *format.InvalidTwoByteSignature
	require.ErrorAs(t, err, &sigErr)
}

func TestParseNKRejectsShortPayload(t *testing.T) {
	_, err := ParseNK(make([]byte, 4))
	require.Error(t, err)
	var sizeErr *format.InvalidHeaderSize
	require.ErrorAs(t, err, &sizeErr)
}

func TestNKNameAndFlags(t *testing.T) {
	payload := buildNK(nkFields{
		name: "Shell\xF6", compressedName: true,
		subkeyListOff: format.InvalidOffset, valueListOff: format.InvalidOffset,
	})
	nk, err := ParseNK(payload)
	require.NoError(t, err)
	assert.True(t, nk.IsCompressedName())
	n, err := nk.Name()
	require.NoError(t, err)
	assert.Equal(t, "Shellö", n.String())
}

func TestNKResolveSubkeyListAbsentIsNotError(t *testing.T) {
	payload := buildNK(nkFields{
		name: "k", compressedName: true,
		subkeyListOff: format.InvalidOffset, valueListOff: format.InvalidOffset,
	})
	nk, err := ParseNK(payload)
	require.NoError(t, err)
	_, has, err := nk.ResolveSubkeyList(nil)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestNKResolveValueListAbsentIsNotError(t *testing.T) {
	payload := buildNK(nkFields{
		name: "k", compressedName: true,
		subkeyListOff: format.InvalidOffset, valueListOff: format.InvalidOffset,
	})
	nk, err := ParseNK(payload)
	require.NoError(t, err)
	_, has, err := nk.ResolveValueList(nil)
	require.NoError(t, err)
	assert.False(t, has)
}
