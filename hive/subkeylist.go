package hive

import (
	"github.com/regcore/nthive/internal/buf"
	"github.com/regcore/nthive/internal/format"
)

// SubkeyListKind tags which of the four on-disk subkey-list layouts a
// SubkeyList holds.
type SubkeyListKind int

const (
	ListUnknown SubkeyListKind = iota
	ListLI                     // Index Leaf: bare NK cell offsets
	ListLF                     // Fast Leaf: NK cell offset + 4-byte ASCII name hint
	ListLH                     // Hash Leaf: NK cell offset + 4-byte name hash
	ListRI                     // Index Root: offsets of child li/lf/lh cells
)

// SubkeyList is a zero-copy view over one "li"/"lf"/"lh"/"ri" cell payload.
// It is modeled as a tagged struct rather than an interface: exactly one of
// the four element kinds is ever meaningful for a given value, selected by
// Kind, and callers that only care about one representation can switch on
// it without a type assertion.
type SubkeyList struct {
	Kind SubkeyListKind
	buf  []byte // full payload, starting with the 2-byte signature
	// absOff is the absolute file offset this payload begins at, carried
	// through so nested Index Root resolution failures can still report a
	// useful offset.
	absOff int
}

// ParseSubkeyList dispatches on payload's signature and validates the
// common index-list header (2-byte tag, u16 count, and enough trailing
// bytes for that many elements of the signature-appropriate width).
func ParseSubkeyList(payload []byte, absOff int) (SubkeyList, error) {
	sig, ok := buf.LeadingSub(payload, format.SignatureSize)
	if !ok {
		return SubkeyList{}, &format.InvalidHeaderSize{Offset: absOff, Expected: format.IdxMinHeader, Actual: len(payload)}
	}
	tag := [2]byte{sig[0], sig[1]}

	var kind SubkeyListKind
	var entrySize int
	switch tag {
	case format.LISignature:
		kind, entrySize = ListLI, format.LIEntrySize
	case format.LFSignature:
		kind, entrySize = ListLF, format.LFLHEntrySize
	case format.LHSignature:
		kind, entrySize = ListLH, format.LFLHEntrySize
	case format.RISignature:
		kind, entrySize = ListRI, format.LIEntrySize
	default:
		return SubkeyList{}, &format.InvalidSubkeyListSignature{Offset: absOff, Expected: "li/lf/lh/ri", Actual: tag}
	}

	if len(payload) < format.IdxMinHeader {
		return SubkeyList{}, &format.InvalidHeaderSize{Offset: absOff, Expected: format.IdxMinHeader, Actual: len(payload)}
	}
	count := int(format.ReadU16(payload, format.IdxCountOffset))
	need := format.IdxListOffset + count*entrySize
	if len(payload) < need {
		return SubkeyList{}, &format.InvalidDataSize{Offset: absOff, Expected: need, Actual: len(payload)}
	}
	return SubkeyList{Kind: kind, buf: payload, absOff: absOff}, nil
}

// Count returns the element count recorded in the list header.
func (sl SubkeyList) Count() int {
	return int(format.ReadU16(sl.buf, format.IdxCountOffset))
}

func (sl SubkeyList) entrySize() int {
	if sl.Kind == ListLF || sl.Kind == ListLH {
		return format.LFLHEntrySize
	}
	return format.LIEntrySize
}

func (sl SubkeyList) entry(i int) []byte {
	off := format.IdxListOffset + i*sl.entrySize()
	return sl.buf[off : off+sl.entrySize()]
}

// cellOffsetAt returns the HCELL_INDEX carried by element i: an NK offset
// for li/lf/lh, or a child list-cell offset for ri.
func (sl SubkeyList) cellOffsetAt(i int) uint32 {
	return format.ReadU32(sl.entry(i), 0)
}

// HashAt returns the lh name hash stored alongside element i. Only
// meaningful when Kind == ListLH.
func (sl SubkeyList) HashAt(i int) uint32 {
	return format.ReadU32(sl.entry(i), 4)
}

// HintAt returns the lf 4-byte ASCII name hint stored alongside element i.
// Only meaningful when Kind == ListLF.
func (sl SubkeyList) HintAt(i int) []byte {
	return sl.entry(i)[4:8]
}

// SubkeyRef is one resolved NK reference produced while flattening a
// subkey list. Err is non-nil when the cell this element named could not
// be resolved or parsed; a failure here never aborts iteration over the
// remaining siblings.
type SubkeyRef struct {
	Offset uint32
	Err    error
}

// Refs flattens this subkey list into a sequence of NK cell offsets. For
// li/lf/lh this is a direct 1:1 mapping of elements; for ri it resolves
// and recurses one level into each child li/lf/lh leaf, per the on-disk
// invariant that an Index Root never points at another Index Root.
func (sl SubkeyList) Refs(hiveBuf []byte) []SubkeyRef {
	n := sl.Count()
	if sl.Kind != ListRI {
		refs := make([]SubkeyRef, n)
		for i := 0; i < n; i++ {
			refs[i] = SubkeyRef{Offset: sl.cellOffsetAt(i)}
		}
		return refs
	}

	var refs []SubkeyRef
	for i := 0; i < n; i++ {
		leafOff := sl.cellOffsetAt(i)
		cell, err := ResolveCell(hiveBuf, leafOff)
		if err != nil {
			refs = append(refs, SubkeyRef{Err: err})
			continue
		}
		payload, err := cell.Payload()
		if err != nil {
			refs = append(refs, SubkeyRef{Err: err})
			continue
		}
		leaf, err := ParseSubkeyList(payload, cell.Off+format.CellHeaderSize)
		if err != nil {
			refs = append(refs, SubkeyRef{Err: err})
			continue
		}
		if leaf.Kind == ListRI {
			refs = append(refs, SubkeyRef{Err: &format.InvalidSubkeyListSignature{
				Offset: cell.Off + format.CellHeaderSize, Expected: "li/lf/lh", Actual: format.RISignature,
			}})
			continue
		}
		refs = append(refs, leaf.Refs(hiveBuf)...)
	}
	return refs
}
