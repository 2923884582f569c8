package hive

import (
	"testing"

	"github.com/regcore/nthive/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCellRoundTrip(t *testing.T) {
	var fb fixtureBuilder
	off := fb.addCell([]byte("nkhello"))
	blob := fb.finish(off)

	cell, err := ResolveCell(blob, off)
	require.NoError(t, err)
	payload, err := cell.Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte("nkhello"), payload[:len("nkhello")])
	assert.True(t, cell.IsAllocated())
}

func TestResolveCellRejectsFreeCell(t *testing.T) {
	blob := make([]byte, format.HiveDataBase+16)
	format.PutI32(blob, format.HiveDataBase, 16) // positive = free
	_, err := ResolveCell(blob, 0)
	require.Error(t, err)
	var cellErr *format.InvalidCellSize
	require.ErrorAs(t, err, &cellErr)
}

func TestResolveCellRejectsUnalignedSize(t *testing.T) {
	blob := make([]byte, format.HiveDataBase+16)
	format.PutI32(blob, format.HiveDataBase, -7) // not a multiple of 8
	_, err := ResolveCell(blob, 0)
	require.Error(t, err)
}

func TestResolveCellRejectsOutOfRangeOffset(t *testing.T) {
	blob := make([]byte, format.HiveDataBase+4)
	_, err := ResolveCell(blob, 1<<20)
	require.Error(t, err)
	var offErr *format.InvalidDataOffset
	require.ErrorAs(t, err, &offErr)
}

func TestCellSignature(t *testing.T) {
	var fb fixtureBuilder
	off := fb.addCell(buildNK(nkFields{name: "x", compressedName: true, subkeyListOff: format.InvalidOffset, valueListOff: format.InvalidOffset}))
	blob := fb.finish(off)
	cell, err := ResolveCell(blob, off)
	require.NoError(t, err)
	sig, err := cell.Signature()
	require.NoError(t, err)
	assert.Equal(t, format.NKSignature, sig)
}
