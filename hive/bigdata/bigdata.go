// Package bigdata implements Big Data ("db") value payloads: values whose
// data exceeds one cell are split across multiple fixed-size segment
// cells, referenced through a "db" header and a separate segment-offset
// list. This package cannot import the hive package (hive's vk reader
// dispatches into here for oversized values), so it resolves cells
// directly against internal/format and internal/buf instead of going
// through hive.ResolveCell.
package bigdata

import (
	"github.com/regcore/nthive/internal/buf"
	"github.com/regcore/nthive/internal/format"
)

// resolvedCell is the minimal cell view this package needs: a validated,
// allocated cell's payload and the absolute offset it starts at.
type resolvedCell struct {
	payload []byte
	absOff  int
}

func resolveCell(hiveBuf []byte, dataOffset uint32) (resolvedCell, error) {
	abs := format.HiveDataBase + int(dataOffset)
	if !buf.Has(hiveBuf, abs, format.CellHeaderSize) {
		return resolvedCell{}, &format.InvalidDataOffset{Offset: format.HiveDataBase, Actual: dataOffset}
	}
	raw := format.ReadI32(hiveBuf, abs)
	if raw >= 0 {
		return resolvedCell{}, &format.InvalidCellSize{Offset: abs, Actual: raw}
	}
	total := int(-raw)
	if total%format.CellAlignment != 0 || total < format.CellHeaderSize {
		return resolvedCell{}, &format.InvalidCellSize{Offset: abs, Actual: raw}
	}
	payload, err := buf.Sub(hiveBuf, abs+format.CellHeaderSize, total-format.CellHeaderSize)
	if err != nil {
		return resolvedCell{}, &format.InvalidCellSize{Offset: abs, Actual: raw}
	}
	return resolvedCell{payload: payload, absOff: abs}, nil
}

// BigData is a parsed "db" header plus its resolved segment-offset list.
// TotalSize is the declared value size from the owning vk record; segments
// are read out in order until that many bytes have been produced.
type BigData struct {
	TotalSize int
	segments  []uint32 // data_offset of each segment cell, in order
}

// Parse resolves dbOffset as a "db" cell, validates its header, and
// resolves the segment-offset list it points to. totalSize is the vk
// record's declared data length, carried here purely to drive Read/the
// iterator — Parse itself does not require it to divide evenly by
// format.DBSegmentSize.
func Parse(hiveBuf []byte, dbOffset uint32, totalSize int) (BigData, error) {
	cell, err := resolveCell(hiveBuf, dbOffset)
	if err != nil {
		return BigData{}, err
	}
	sig, ok := buf.LeadingSub(cell.payload, format.SignatureSize)
	if !ok || [2]byte{sig[0], sig[1]} != format.DBSignature {
		var actual [2]byte
		if ok {
			actual = [2]byte{sig[0], sig[1]}
		}
		return BigData{}, &format.InvalidTwoByteSignature{Offset: cell.absOff + format.CellHeaderSize, Expected: "db", Actual: actual}
	}
	if len(cell.payload) < format.DBHeaderSize {
		return BigData{}, &format.InvalidHeaderSize{Offset: cell.absOff + format.CellHeaderSize, Expected: format.DBHeaderSize, Actual: len(cell.payload)}
	}
	count := int(format.ReadU16(cell.payload, format.DBCountOffset))
	if count < format.DBMinSegmentCount {
		return BigData{}, &format.InvalidSizeField{Offset: cell.absOff + format.CellHeaderSize + format.DBCountOffset, Expected: format.DBMinSegmentCount, Actual: count}
	}

	listOffset := format.ReadU32(cell.payload, format.DBListOffset)
	listCell, err := resolveCell(hiveBuf, listOffset)
	if err != nil {
		return BigData{}, err
	}
	need := count * format.LIEntrySize
	if len(listCell.payload) < need {
		return BigData{}, &format.InvalidDataSize{Offset: listCell.absOff + format.CellHeaderSize, Expected: need, Actual: len(listCell.payload)}
	}
	segments := make([]uint32, count)
	for i := range segments {
		segments[i] = format.ReadU32(listCell.payload, i*format.LIEntrySize)
	}

	return BigData{TotalSize: totalSize, segments: segments}, nil
}

// SegmentCount returns the number of segment cells.
func (d BigData) SegmentCount() int { return len(d.segments) }

// Reader iterates a BigData's segments in order, yielding each segment's
// slice of the logical payload. It never owns memory: every returned slice
// points directly into hiveBuf.
type Reader struct {
	hiveBuf   []byte
	segments  []uint32
	idx       int
	total     int
	remaining int
	done      bool
}

// NewReader starts a fresh iteration over d's segments.
func (d BigData) NewReader(hiveBuf []byte) *Reader {
	return &Reader{hiveBuf: hiveBuf, segments: d.segments, total: d.TotalSize, remaining: d.TotalSize}
}

// Clone returns an independent Reader restarted from r's current position,
// so a caller can re-read a value without re-parsing its BigData header.
func (r *Reader) Clone() *Reader {
	c := *r
	return &c
}

// Next returns the next segment's payload bytes. ok is false once every
// segment has been consumed (not an error: end of data). Once Next returns
// a non-nil error, the Reader is exhausted and every subsequent call
// returns ok=false with no error, rather than re-reporting the failure.
func (r *Reader) Next() (chunk []byte, ok bool, err error) {
	if r.done || r.remaining <= 0 {
		r.done = true
		return nil, false, nil
	}
	if r.idx >= len(r.segments) {
		r.done = true
		return nil, false, &format.InvalidDataSize{Offset: 0, Expected: r.total, Actual: r.total - r.remaining}
	}
	want := format.DBSegmentSize
	if r.remaining < want {
		want = r.remaining
	}
	cell, err := resolveCell(r.hiveBuf, r.segments[r.idx])
	if err != nil {
		r.done = true
		return nil, false, err
	}
	data, ok := buf.LeadingSub(cell.payload, want)
	if !ok {
		r.done = true
		return nil, false, &format.InvalidDataSize{Offset: cell.absOff + format.CellHeaderSize, Expected: want, Actual: len(cell.payload)}
	}
	r.idx++
	r.remaining -= want
	return data, true, nil
}

// ReadAll drains the Reader into a single contiguous buffer, stopping at
// the first segment error.
func (d BigData) ReadAll(hiveBuf []byte) ([]byte, error) {
	r := d.NewReader(hiveBuf)
	out := make([]byte, 0, d.TotalSize)
	for {
		chunk, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, chunk...)
	}
	return out, nil
}
