package hive

import (
	"github.com/regcore/nthive/hive/bigdata"
	"github.com/regcore/nthive/hive/name"
	"github.com/regcore/nthive/internal/buf"
	"github.com/regcore/nthive/internal/format"
)

// VK is a zero-copy view over a parsed "vk" (Key Value) cell payload.
type VK struct {
	buf []byte // payload starting at 'vk'
}

// ParseVK validates payload as a Key Value and returns a view over it.
func ParseVK(payload []byte) (VK, error) {
	if len(payload) < format.VKFixedHeaderSize {
		return VK{}, &format.InvalidHeaderSize{Offset: 0, Expected: format.VKFixedHeaderSize, Actual: len(payload)}
	}
	sig, _ := buf.LeadingSub(payload, format.SignatureSize)
	if [2]byte{sig[0], sig[1]} != format.VKSignature {
		return VK{}, &format.InvalidTwoByteSignature{Offset: 0, Expected: "vk", Actual: [2]byte{sig[0], sig[1]}}
	}
	return VK{buf: payload}, nil
}

func (v VK) Flags() uint16 { return format.ReadU16(v.buf, format.VKFlagsOffset) }

// DataType returns the raw REG_* type code, whether or not it is one this
// parser recognizes; use format.IsKnownDataType to check.
func (v VK) DataType() uint32 { return format.ReadU32(v.buf, format.VKTypeOffset) }

// NameLength returns the value name length in bytes (not characters). A
// length of zero means the unnamed "(Default)" value.
func (v VK) NameLength() uint16 { return format.ReadU16(v.buf, format.VKNameLenOffset) }

// IsASCIIName reports whether the name is stored as Latin-1 (true) rather
// than UTF-16LE (false).
func (v VK) IsASCIIName() bool { return v.Flags()&format.VKFlagASCIIName != 0 }

// Name returns the value's name, decoded per IsASCIIName. An empty Name
// represents the unnamed default value of its key.
func (v VK) Name() (name.Name, error) {
	nl := v.NameLength()
	if nl == 0 {
		return name.New(nil, v.IsASCIIName()), nil
	}
	raw, ok := rawNameBytes(v.buf, format.VKNameOffset, nl)
	if !ok {
		return name.Name{}, &format.InvalidDataSize{Offset: format.VKNameOffset, Expected: int(nl), Actual: len(v.buf) - format.VKNameOffset}
	}
	return name.New(raw, v.IsASCIIName()), nil
}

func (v VK) rawDataSize() uint32 { return format.ReadU32(v.buf, format.VKDataLenOffset) }

// isInline reports whether the value's payload lives inside the 4-byte
// data_offset field itself rather than in a referenced cell.
func (v VK) isInline() bool { return v.rawDataSize()&format.VKDataInlineBit != 0 }

// dataSize returns the declared payload length with the inline-storage
// flag bit masked off.
func (v VK) dataSize() int { return int(v.rawDataSize() & format.VKDataLengthMask) }

func (v VK) dataOffset() uint32 { return format.ReadU32(v.buf, format.VKDataOffOffset) }

// DataKind tags which field of Data is meaningful.
type DataKind int

const (
	DataSmall DataKind = iota
	DataBig
)

// Data is the tagged result of resolving a vk's payload: exactly one of
// Small or Big is meaningful, selected by Kind. Modeled as a tagged struct
// rather than an interface so callers needing only the common case (most
// values are Small) never have to do a type assertion.
type Data struct {
	Kind  DataKind
	Small []byte          // valid when Kind == DataSmall
	Big   bigdata.BigData // valid when Kind == DataBig
}

// Data resolves the value's payload. Three storage modes collapse to two
// tagged outcomes: data stored inline in data_offset and data stored in a
// single external cell are both DataSmall; data whose declared size
// exceeds one Big Data segment is DataBig, backed by the bigdata package.
func (v VK) Data(hiveBuf []byte) (Data, error) {
	n := v.dataSize()
	if n == 0 {
		return Data{Kind: DataSmall, Small: nil}, nil
	}

	if v.isInline() {
		if n > format.CellHeaderSize {
			return Data{}, &format.InvalidSizeField{Offset: format.VKDataLenOffset, Expected: format.CellHeaderSize, Actual: n}
		}
		raw := v.buf[format.VKDataOffOffset : format.VKDataOffOffset+format.CellHeaderSize]
		return Data{Kind: DataSmall, Small: raw[:n:n]}, nil
	}

	if n <= format.DBSegmentSize {
		cell, err := ResolveCell(hiveBuf, v.dataOffset())
		if err != nil {
			return Data{}, err
		}
		payload, err := cell.Payload()
		if err != nil {
			return Data{}, err
		}
		if len(payload) < n {
			return Data{}, &format.InvalidDataSize{Offset: cell.Off + format.CellHeaderSize, Expected: n, Actual: len(payload)}
		}
		return Data{Kind: DataSmall, Small: payload[:n:n]}, nil
	}

	bd, err := bigdata.Parse(hiveBuf, v.dataOffset(), n)
	if err != nil {
		return Data{}, err
	}
	return Data{Kind: DataBig, Big: bd}, nil
}

// bytes concatenates Data into one contiguous slice, reading through a
// Big Data reader when necessary. Used by the typed accessors below, all
// of which work against the whole logical payload.
func (d Data) bytes(hiveBuf []byte) ([]byte, error) {
	if d.Kind == DataSmall {
		return d.Small, nil
	}
	return d.Big.ReadAll(hiveBuf)
}

// StringData returns the decoded value of a REG_SZ or REG_EXPAND_SZ value.
func (v VK) StringData(hiveBuf []byte) (string, error) {
	if t := v.DataType(); t != format.RegSZ && t != format.RegExpandSZ {
		return "", &format.UnsupportedKeyValueDataType{Offset: format.VKTypeOffset, Actual: t}
	}
	d, err := v.Data(hiveBuf)
	if err != nil {
		return "", err
	}
	b, err := d.bytes(hiveBuf)
	if err != nil {
		return "", err
	}
	return name.DecodeString(b), nil
}

// MultiStringData returns the decoded lines of a REG_MULTI_SZ value.
func (v VK) MultiStringData(hiveBuf []byte) ([]string, error) {
	if t := v.DataType(); t != format.RegMultiSZ {
		return nil, &format.UnsupportedKeyValueDataType{Offset: format.VKTypeOffset, Actual: t}
	}
	d, err := v.Data(hiveBuf)
	if err != nil {
		return nil, err
	}
	b, err := d.bytes(hiveBuf)
	if err != nil {
		return nil, err
	}
	return name.DecodeMultiString(b), nil
}

// DWordData returns the decoded value of a REG_DWORD or
// REG_DWORD_BIG_ENDIAN value. DWORD data is always small: a declared size
// requiring a Big Data structure is itself a structural error.
func (v VK) DWordData(hiveBuf []byte) (uint32, error) {
	t := v.DataType()
	if t != format.RegDWord && t != format.RegDWordBigEndian {
		return 0, &format.UnsupportedKeyValueDataType{Offset: format.VKTypeOffset, Actual: t}
	}
	d, err := v.Data(hiveBuf)
	if err != nil {
		return 0, err
	}
	if d.Kind != DataSmall || len(d.Small) != 4 {
		return 0, &format.InvalidDataSize{Offset: format.VKDataLenOffset, Expected: 4, Actual: v.dataSize()}
	}
	if t == format.RegDWordBigEndian {
		return buf.U32BE(d.Small, 0)
	}
	return buf.U32LE(d.Small, 0)
}

// QWordData returns the decoded value of a REG_QWORD value.
func (v VK) QWordData(hiveBuf []byte) (uint64, error) {
	t := v.DataType()
	if t != format.RegQWord {
		return 0, &format.UnsupportedKeyValueDataType{Offset: format.VKTypeOffset, Actual: t}
	}
	d, err := v.Data(hiveBuf)
	if err != nil {
		return 0, err
	}
	if d.Kind != DataSmall || len(d.Small) != 8 {
		return 0, &format.InvalidDataSize{Offset: format.VKDataLenOffset, Expected: 8, Actual: v.dataSize()}
	}
	return buf.U64LE(d.Small, 0)
}

// BinaryData returns the raw bytes of any value, regardless of its
// declared type — the escape hatch for REG_BINARY and any type this
// parser does not otherwise model a typed accessor for.
func (v VK) BinaryData(hiveBuf []byte) ([]byte, error) {
	d, err := v.Data(hiveBuf)
	if err != nil {
		return nil, err
	}
	return d.bytes(hiveBuf)
}
