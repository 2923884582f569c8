package hive

import (
	"testing"

	"github.com/regcore/nthive/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubkeyListDispatchesOnSignature(t *testing.T) {
	cases := []struct {
		sig  [2]byte
		kind SubkeyListKind
	}{
		{format.LISignature, ListLI},
		{format.LFSignature, ListLF},
		{format.LHSignature, ListLH},
		{format.RISignature, ListRI},
	}
	for _, c := range cases {
		payload := buildIndexList(c.sig, []uint32{0x10}, listExtras(c.sig))
		list, err := ParseSubkeyList(payload, 0)
		require.NoError(t, err)
		assert.Equal(t, c.kind, list.Kind)
		assert.Equal(t, 1, list.Count())
	}
}

func listExtras(sig [2]byte) [][4]byte {
	if sig == format.LISignature || sig == format.RISignature {
		return nil
	}
	return [][4]byte{{0, 0, 0, 0}}
}

func TestParseSubkeyListRejectsUnknownSignature(t *testing.T) {
	payload := buildIndexList([2]byte{'z', 'z'}, nil, nil)
	_, err := ParseSubkeyList(payload, 0)
	require.Error(t, err)
	var sigErr *format.InvalidSubkeyListSignature
	require.ErrorAs(t, err, &sigErr)
}

func TestParseSubkeyListRejectsTruncatedElements(t *testing.T) {
	payload := buildIndexList(format.LISignature, []uint32{1, 2, 3}, nil)
	truncated := payload[:len(payload)-2]
	_, err := ParseSubkeyList(truncated, 0)
	require.Error(t, err)
}

func TestLIRefsFlatten(t *testing.T) {
	payload := buildIndexList(format.LISignature, []uint32{0x10, 0x20, 0x30}, nil)
	list, err := ParseSubkeyList(payload, 0)
	require.NoError(t, err)
	refs := list.Refs(nil)
	require.Len(t, refs, 3)
	assert.Equal(t, uint32(0x10), refs[0].Offset)
	assert.Equal(t, uint32(0x20), refs[1].Offset)
	assert.Equal(t, uint32(0x30), refs[2].Offset)
}

func TestRIRefsRecurseOneLevel(t *testing.T) {
	var fb fixtureBuilder
	leaf := buildIndexList(format.LISignature, []uint32{0xA0, 0xB0}, nil)
	leafOff := fb.addCell(leaf)
	ri := buildIndexList(format.RISignature, []uint32{leafOff}, nil)
	riOff := fb.addCell(ri)
	blob := fb.finish(0)

	cell, err := ResolveCell(blob, riOff)
	require.NoError(t, err)
	payload, err := cell.Payload()
	require.NoError(t, err)
	list, err := ParseSubkeyList(payload, cell.Off+format.CellHeaderSize)
	require.NoError(t, err)
	require.Equal(t, ListRI, list.Kind)

	refs := list.Refs(blob)
	require.Len(t, refs, 2)
	assert.Equal(t, uint32(0xA0), refs[0].Offset)
	assert.Equal(t, uint32(0xB0), refs[1].Offset)
}

func TestRIRejectsNestedIndexRoot(t *testing.T) {
	var fb fixtureBuilder
	innerRI := buildIndexList(format.RISignature, []uint32{0x10}, nil)
	innerOff := fb.addCell(innerRI)
	outerRI := buildIndexList(format.RISignature, []uint32{innerOff}, nil)
	outerOff := fb.addCell(outerRI)
	blob := fb.finish(0)

	cell, err := ResolveCell(blob, outerOff)
	require.NoError(t, err)
	payload, err := cell.Payload()
	require.NoError(t, err)
	list, err := ParseSubkeyList(payload, cell.Off+format.CellHeaderSize)
	require.NoError(t, err)

	refs := list.Refs(blob)
	require.Len(t, refs, 1)
	require.Error(t, refs[0].Err)
	var sigErr *format.InvalidSubkeyListSignature
	require.ErrorAs(t, refs[0].Err, &sigErr)
}
