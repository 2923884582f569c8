package hive

import (
	"github.com/regcore/nthive/internal/buf"
	"github.com/regcore/nthive/internal/format"
	"github.com/regcore/nthive/hive/name"
)

// NK is a zero-copy view over a parsed "nk" (Key Node) cell payload. It
// never owns memory; every accessor reads directly out of the hive blob
// the cell was resolved from.
type NK struct {
	buf []byte // the cell payload, starting with "nk"
}

// ParseNK validates payload as a Key Node and returns a view over it.
func ParseNK(payload []byte) (NK, error) {
	if len(payload) < format.NKFixedHeaderSize {
		return NK{}, &format.InvalidHeaderSize{Offset: 0, Expected: format.NKFixedHeaderSize, Actual: len(payload)}
	}
	sig, _ := buf.LeadingSub(payload, format.SignatureSize)
	if [2]byte{sig[0], sig[1]} != format.NKSignature {
		return NK{}, &format.InvalidTwoByteSignature{Offset: 0, Expected: "nk", Actual: [2]byte{sig[0], sig[1]}}
	}
	return NK{buf: payload}, nil
}

// Flags returns the nk Flags field.
func (n NK) Flags() uint16 { return format.ReadU16(n.buf, format.NKFlagsOffset) }

// SubkeyCount returns the number of stable subkeys.
func (n NK) SubkeyCount() uint32 { return format.ReadU32(n.buf, format.NKSubkeyCountOffset) }

// SubkeyListOffset returns the HCELL_INDEX (data_offset) of the stable
// subkey list, or format.InvalidOffset if there is none.
func (n NK) SubkeyListOffset() uint32 { return format.ReadU32(n.buf, format.NKSubkeyListOffset) }

// ValueCount returns the number of values attached to this key.
func (n NK) ValueCount() uint32 { return format.ReadU32(n.buf, format.NKValueCountOffset) }

// ValueListOffset returns the HCELL_INDEX of the value list, or
// format.InvalidOffset if there are no values.
func (n NK) ValueListOffset() uint32 { return format.ReadU32(n.buf, format.NKValueListOffset) }

// NameLength returns the key name length in bytes (not characters).
func (n NK) NameLength() uint16 { return format.ReadU16(n.buf, format.NKNameLenOffset) }

// IsCompressedName reports whether the key name is stored as Latin-1
// (true) rather than UTF-16LE (false).
func (n NK) IsCompressedName() bool { return n.Flags()&format.NKFlagCompressedName != 0 }

// Name returns the key's name, decoded per IsCompressedName.
func (n NK) Name() (name.Name, error) {
	raw, ok := rawNameBytes(n.buf, format.NKNameOffset, n.NameLength())
	if !ok {
		return name.Name{}, &format.InvalidDataSize{Offset: format.NKNameOffset, Expected: int(n.NameLength()), Actual: len(n.buf) - format.NKNameOffset}
	}
	return name.New(raw, n.IsCompressedName()), nil
}

// rawNameBytes slices the len bytes of inline name data starting at off
// within buf, reporting ok=false if they do not fit.
func rawNameBytes(buf []byte, off int, nameLen uint16) ([]byte, bool) {
	end := off + int(nameLen)
	if end > len(buf) {
		return nil, false
	}
	return buf[off:end], true
}

// ResolveSubkeyList resolves and parses the subkey list this NK references.
// Returns ok=false (no error) when the key legitimately has zero subkeys.
func (n NK) ResolveSubkeyList(hiveBuf []byte) (SubkeyList, bool, error) {
	if n.SubkeyCount() == 0 {
		return SubkeyList{}, false, nil
	}
	offset := n.SubkeyListOffset()
	if offset == format.InvalidOffset {
		return SubkeyList{}, false, nil
	}
	cell, err := ResolveCell(hiveBuf, offset)
	if err != nil {
		return SubkeyList{}, true, err
	}
	payload, err := cell.Payload()
	if err != nil {
		return SubkeyList{}, true, err
	}
	list, err := ParseSubkeyList(payload, cell.Off+format.CellHeaderSize)
	return list, true, err
}

// ResolveValueList resolves the flat array of VK offsets this NK references.
// Returns ok=false (no error) when the key legitimately has zero values.
func (n NK) ResolveValueList(hiveBuf []byte) (ValueList, bool, error) {
	count := n.ValueCount()
	if count == 0 {
		return ValueList{}, false, nil
	}
	offset := n.ValueListOffset()
	if offset == format.InvalidOffset {
		return ValueList{}, false, nil
	}
	cell, err := ResolveCell(hiveBuf, offset)
	if err != nil {
		return ValueList{}, true, err
	}
	payload, err := cell.Payload()
	if err != nil {
		return ValueList{}, true, err
	}
	vl, err := ParseValueList(payload, int(count))
	return vl, true, err
}
