// Package hive parses Windows NT registry hive files: a read-only,
// zero-copy decoder over an in-memory byte slice. It performs no I/O of
// its own; callers are responsible for getting the bytes (from disk, from
// a memory-mapped region, from a network fetch) into memory first.
package hive

import (
	"github.com/regcore/nthive/internal/buf"
	"github.com/regcore/nthive/internal/format"
)

// Hive is an opened registry hive: an immutable byte slice plus the root
// cell's location. It owns no memory beyond the slice it was given and
// holds no mutable state — any number of goroutines may read through
// independent Keys and iterators derived from the same Hive concurrently.
type Hive struct {
	data        []byte
	rootDataOff uint32
}

// Open validates data's base block signature and locates the root cell.
// Full base-block semantic validation (checksum, version policy, sequence
// numbers) is a concern of whatever produced or is about to persist the
// file, not of this read-only decoder; Open checks only what finding the
// root cell requires.
func Open(data []byte) (*Hive, error) {
	if len(data) < format.REGFMinHeaderSize {
		return nil, &format.InvalidHeaderSize{Offset: 0, Expected: format.REGFMinHeaderSize, Actual: len(data)}
	}
	sig, ok := buf.LeadingSub(data, format.REGFSignatureSize)
	if !ok || [4]byte{sig[0], sig[1], sig[2], sig[3]} != format.REGFSignature {
		var actual [2]byte
		if len(data) >= 2 {
			actual = [2]byte{data[0], data[1]}
		}
		return nil, &format.InvalidTwoByteSignature{Offset: 0, Expected: "regf", Actual: actual}
	}
	if len(data) < format.HiveDataBase {
		return nil, &format.InvalidHeaderSize{Offset: 0, Expected: format.HiveDataBase, Actual: len(data)}
	}
	rootOff := format.ReadU32(data, format.REGFRootCellOffset)
	return &Hive{data: data, rootDataOff: rootOff}, nil
}

// Root returns the hive's root Key Node.
func (h *Hive) Root() (Key, error) {
	return h.keyAt(h.rootDataOff)
}

func (h *Hive) keyAt(dataOffset uint32) (Key, error) {
	cell, err := ResolveCell(h.data, dataOffset)
	if err != nil {
		return Key{}, err
	}
	payload, err := cell.Payload()
	if err != nil {
		return Key{}, err
	}
	nk, err := ParseNK(payload)
	if err != nil {
		return Key{}, err
	}
	return Key{hiveBuf: h.data, nk: nk}, nil
}
