package hive

import (
	"github.com/regcore/nthive/internal/buf"
	"github.com/regcore/nthive/internal/format"
)

// Cell is a zero-copy view over a single hive cell. On disk a cell is:
//
//	int32  size     // negative = allocated, positive = free
//	...    payload
//
// size is always relative to the start of this cell's own header, and Cell
// never owns the bytes it views — Buf always points back into the caller's
// original blob.
type Cell struct {
	Buf []byte // the full hive blob
	Off int    // absolute offset of this cell's size header within Buf
}

// ResolveCell implements the data_offset to cell resolution spec.md §4.3
// describes: a data_offset is relative to the start of hive-bin space
// (absolute offset format.HiveDataBase), and the cell found there must be
// allocated, 8-byte aligned, and large enough to hold its own header before
// any field inside it can be trusted.
func ResolveCell(hiveBuf []byte, dataOffset uint32) (Cell, error) {
	abs := format.HiveDataBase + int(dataOffset)
	if !buf.Has(hiveBuf, abs, format.CellHeaderSize) {
		return Cell{}, &format.InvalidDataOffset{Offset: format.HiveDataBase, Actual: dataOffset}
	}
	c := Cell{Buf: hiveBuf, Off: abs}
	if _, err := c.size(); err != nil {
		return Cell{}, err
	}
	return c, nil
}

// size validates and returns the raw signed size header, failing if the
// cell is free, zero, not 8-byte aligned, or too short to hold its own
// header.
func (c Cell) size() (int32, error) {
	raw := format.ReadI32(c.Buf, c.Off)
	if raw >= 0 {
		// Zero or positive: unallocated (free) cell, never a valid target
		// for a data_offset reference.
		return 0, &format.InvalidCellSize{Offset: c.Off, Actual: raw}
	}
	abs := int(-raw)
	if abs%format.CellAlignment != 0 || abs < format.CellHeaderSize {
		return 0, &format.InvalidCellSize{Offset: c.Off, Actual: raw}
	}
	if !buf.Has(c.Buf, c.Off, abs) {
		return 0, &format.InvalidCellSize{Offset: c.Off, Actual: raw}
	}
	return raw, nil
}

// SizeAbs returns the total size of the cell (header + payload) in bytes,
// or 0 if the cell header itself is structurally invalid.
func (c Cell) SizeAbs() int {
	raw, err := c.size()
	if err != nil {
		return 0
	}
	return int(-raw)
}

// IsAllocated reports whether the cell is in use.
func (c Cell) IsAllocated() bool {
	raw, err := c.size()
	return err == nil && raw < 0
}

// Payload returns the cell bytes following the 4-byte size header.
func (c Cell) Payload() ([]byte, error) {
	total, err := c.size()
	if err != nil {
		return nil, err
	}
	return buf.Sub(c.Buf, c.Off+format.CellHeaderSize, int(-total)-format.CellHeaderSize)
}

// Signature returns the first two payload bytes, i.e. the structure tag
// ("nk", "vk", "lf", "lh", "li", "ri", "sk", "db").
func (c Cell) Signature() ([2]byte, error) {
	p, err := c.Payload()
	if err != nil {
		return [2]byte{}, err
	}
	sig, ok := buf.LeadingSub(p, format.SignatureSize)
	if !ok {
		return [2]byte{}, &format.InvalidHeaderSize{Offset: c.Off, Expected: format.SignatureSize, Actual: len(p)}
	}
	return [2]byte{sig[0], sig[1]}, nil
}
