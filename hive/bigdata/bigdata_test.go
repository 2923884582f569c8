package bigdata

import (
	"testing"

	"github.com/regcore/nthive/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture assembles a minimal hive blob by hand: cells are appended as a
// flat, 8-byte-aligned run starting right after the fixed header region
// this package treats as format.HiveDataBase.
type fixture struct {
	cells []byte
}

func (f *fixture) addCell(payload []byte) uint32 {
	off := uint32(len(f.cells))
	total := format.CellHeaderSize + len(payload)
	if rem := total % format.CellAlignment; rem != 0 {
		total += format.CellAlignment - rem
	}
	cell := make([]byte, total)
	format.PutI32(cell, 0, -int32(total))
	copy(cell[format.CellHeaderSize:], payload)
	f.cells = append(f.cells, cell...)
	return off
}

func (f *fixture) blob() []byte {
	out := make([]byte, format.HiveDataBase)
	return append(out, f.cells...)
}

func buildDB(f *fixture, segmentOffsets []uint32) uint32 {
	listPayload := make([]byte, len(segmentOffsets)*format.LIEntrySize)
	for i, off := range segmentOffsets {
		format.PutU32(listPayload, i*format.LIEntrySize, off)
	}
	listOff := f.addCell(listPayload)

	header := make([]byte, format.DBHeaderSize)
	copy(header[0:2], format.DBSignature[:])
	format.PutU16(header, format.DBCountOffset, uint16(len(segmentOffsets)))
	format.PutU32(header, format.DBListOffset, listOff)
	return f.addCell(header)
}

func TestParseAndReadAllRoundTrip(t *testing.T) {
	var f fixture
	seg0 := make([]byte, format.DBSegmentSize)
	for i := range seg0 {
		seg0[i] = byte(i)
	}
	seg1 := []byte{9, 9, 9}
	seg0Off := f.addCell(seg0)
	seg1Off := f.addCell(seg1)
	dbOff := buildDB(&f, []uint32{seg0Off, seg1Off})

	total := len(seg0) + len(seg1)
	bd, err := Parse(f.blob(), dbOff, total)
	require.NoError(t, err)
	assert.Equal(t, 2, bd.SegmentCount())

	out, err := bd.ReadAll(f.blob())
	require.NoError(t, err)
	require.Len(t, out, total)
	assert.Equal(t, seg0, out[:len(seg0)])
	assert.Equal(t, seg1, out[len(seg0):])
}

func TestReaderCloneIsIndependent(t *testing.T) {
	var f fixture
	seg0 := make([]byte, format.DBSegmentSize)
	seg1 := []byte{5, 6, 7, 8}
	seg0Off := f.addCell(seg0)
	seg1Off := f.addCell(seg1)
	dbOff := buildDB(&f, []uint32{seg0Off, seg1Off})

	bd, err := Parse(f.blob(), dbOff, len(seg0)+len(seg1))
	require.NoError(t, err)

	r := bd.NewReader(f.blob())
	first, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, seg0, first)

	clone := r.Clone()
	chunkA, okA, errA := r.Next()
	chunkB, okB, errB := clone.Next()
	require.NoError(t, errA)
	require.NoError(t, errB)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, chunkA, chunkB)

	_, ok, err = r.Next()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestParseRejectsBadSignature(t *testing.T) {
	var f fixture
	header := make([]byte, format.DBHeaderSize)
	header[0], header[1] = 'x', 'x'
	format.PutU16(header, format.DBCountOffset, 2)
	dbOff := f.addCell(header)

	_, err := Parse(f.blob(), dbOff, 100)
	require.Error(t, err)
	var sigErr *format.InvalidTwoByteSignature
	require.ErrorAs(t, err, &sigErr)
}

func TestParseRejectsShortSegmentList(t *testing.T) {
	var f fixture
	// Only one u32 in the list cell, but the header claims 2 segments.
	listOff := f.addCell(make([]byte, format.LIEntrySize))
	header := make([]byte, format.DBHeaderSize)
	copy(header[0:2], format.DBSignature[:])
	format.PutU16(header, format.DBCountOffset, 2)
	format.PutU32(header, format.DBListOffset, listOff)
	dbOff := f.addCell(header)

	_, err := Parse(f.blob(), dbOff, 100)
	require.Error(t, err)
	var sizeErr *format.InvalidDataSize
	require.ErrorAs(t, err, &sizeErr)
}

func TestNextRejectsShortSegmentCell(t *testing.T) {
	var f fixture
	seg0 := make([]byte, format.DBSegmentSize)
	seg0Off := f.addCell(seg0)
	shortSeg := make([]byte, 10) // far short of DBSegmentSize
	segOff := f.addCell(shortSeg)
	dbOff := buildDB(&f, []uint32{seg0Off, segOff})

	bd, err := Parse(f.blob(), dbOff, 2*format.DBSegmentSize)
	require.NoError(t, err)

	r := bd.NewReader(f.blob())
	_, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = r.Next()
	require.False(t, ok)
	require.Error(t, err)
	var sizeErr *format.InvalidDataSize
	require.ErrorAs(t, err, &sizeErr)

	_, ok, err = r.Next()
	assert.False(t, ok)
	assert.NoError(t, err)
}

// TestNextRejectsTotalSizeMismatch covers a "db" record whose segment list
// runs out before the declared total size is reached: this must surface as
// an error, not a silently truncated read.
func TestNextRejectsTotalSizeMismatch(t *testing.T) {
	var f fixture
	seg0 := make([]byte, format.DBSegmentSize)
	seg1 := make([]byte, format.DBSegmentSize)
	seg0Off := f.addCell(seg0)
	seg1Off := f.addCell(seg1)
	dbOff := buildDB(&f, []uint32{seg0Off, seg1Off})

	declaredTotal := len(seg0) + len(seg1) + 100 // more than the two segments can supply
	bd, err := Parse(f.blob(), dbOff, declaredTotal)
	require.NoError(t, err)

	r := bd.NewReader(f.blob())
	for _, seg := range [][]byte{seg0, seg1} {
		chunk, ok, err := r.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Len(t, chunk, len(seg))
	}

	_, ok, err := r.Next()
	require.False(t, ok)
	require.Error(t, err)
	var mismatchErr *format.InvalidDataSize
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, declaredTotal, mismatchErr.Expected)
	assert.Equal(t, len(seg0)+len(seg1), mismatchErr.Actual)

	_, ok, err = r.Next()
	assert.False(t, ok)
	assert.NoError(t, err)
}
