// Package format houses the low-level on-disk layout of the Windows NT
// registry hive binary format: signatures, field offsets, and structural
// constants. It has no dependency on the rest of the module so that both
// the cell layer and the Big Data reader can share a single source of
// truth for layout without an import cycle.
package format

// Two-byte structure signatures. Every structured cell payload begins with
// one of these as its first two bytes.
var (
	NKSignature = [2]byte{'n', 'k'} // Key Node
	VKSignature = [2]byte{'v', 'k'} // Key Value
	SKSignature = [2]byte{'s', 'k'} // Security descriptor (referenced, not parsed)
	RISignature = [2]byte{'r', 'i'} // Index Root
	LISignature = [2]byte{'l', 'i'} // Index Leaf
	LFSignature = [2]byte{'l', 'f'} // Fast Leaf
	LHSignature = [2]byte{'l', 'h'} // Hash Leaf
	DBSignature = [2]byte{'d', 'b'} // Big Data header
)

const (
	// SignatureSize is the width of every two-byte structure tag.
	SignatureSize = 2

	// HiveDataBase is the absolute byte offset of the first Hive Bin, i.e.
	// the origin that every data_offset is relative to. This is the one
	// REGF-header-derived constant the cell layer needs; the header itself
	// is parsed by an external collaborator.
	HiveDataBase = 0x1000

	// HBinSize is the size of a Hive Bin in bytes. Bins are purely an
	// allocation-paging concept on disk; resolving a single data_offset
	// never needs to walk bin headers (see cell.go), but the constant
	// documents the partitioning spec.md describes.
	HBinSize = 0x1000

	// CellHeaderSize is the width of the signed 32-bit cell-size header
	// that precedes every cell payload.
	CellHeaderSize = 4

	// CellAlignment is the required 8-byte alignment of cell sizes.
	CellAlignment = 8

	// InvalidOffset marks an unused/absent HCELL_INDEX field.
	InvalidOffset = 0xFFFFFFFF
)

// REGFSignature is the four-byte tag at the start of the base block. The
// base block's remaining fields (checksum, sequence numbers, version
// policy) are an external collaborator's concern; the cell layer only
// needs the signature and the root cell pointer below.
var REGFSignature = [4]byte{'r', 'e', 'g', 'f'}

// REGF base block layout (relative to the start of the file). Only the
// fields needed to locate the root cell are retained.
const (
	REGFSignatureSize      = 4
	REGFRootCellOffset     = 0x24 // u32, HCELL_INDEX of the root nk cell
	REGFMinHeaderSize      = REGFRootCellOffset + 4
)

// Key Node ("nk") field offsets, relative to the start of the cell payload.
const (
	NKFlagsOffset       = 0x02 // u16
	NKSubkeyCountOffset = 0x14 // u32, stable subkey count
	NKSubkeyListOffset  = 0x1C // u32, HCELL_INDEX of stable subkey list
	NKValueCountOffset  = 0x24 // u32
	NKValueListOffset   = 0x28 // u32, HCELL_INDEX of value list
	NKNameLenOffset     = 0x48 // u16, name length in bytes
	NKNameOffset        = 0x4C // start of inline name bytes

	// NKFixedHeaderSize is the size of the fixed-width portion of an nk
	// cell, i.e. the offset where the variable-length name begins.
	NKFixedHeaderSize = NKNameOffset

	// NKFlagCompressedName selects Latin-1 (set) vs UTF-16LE (clear)
	// encoding for the key name.
	NKFlagCompressedName = 0x0020
)

// Key Value ("vk") field offsets, relative to the start of the cell payload.
const (
	VKNameLenOffset = 0x02 // u16
	VKDataLenOffset = 0x04 // u32, high bit = inline-storage flag
	VKDataOffOffset = 0x08 // u32, HCELL_INDEX or inline payload
	VKTypeOffset    = 0x0C // u32, REG_* type code
	VKFlagsOffset   = 0x10 // u16
	VKNameOffset    = 0x14 // start of inline name bytes

	// VKFixedHeaderSize is the size of the fixed-width vk header.
	VKFixedHeaderSize = VKNameOffset

	// VKFlagASCIIName selects Latin-1 (set) vs UTF-16LE (clear) encoding
	// for the value name.
	VKFlagASCIIName = 0x0001

	// VKDataInlineBit marks data_size as carrying its payload inline in
	// data_offset rather than pointing at a separate cell.
	VKDataInlineBit  = 0x8000_0000
	VKDataLengthMask = 0x7FFF_FFFF
)

// Subkey-list ("li"/"lf"/"lh"/"ri") common header layout.
const (
	IdxSignatureOffset = 0x00 // 2 bytes
	IdxCountOffset     = 0x02 // u16
	IdxListOffset      = 0x04 // start of the variable-length element array

	// IdxMinHeader is the minimum payload length for any of the four
	// subkey-list cell kinds (header only, zero elements).
	IdxMinHeader = IdxListOffset
)

// Subkey-list per-element sizes.
const (
	// LIEntrySize is the width of one li/ri element: a bare u32 cell offset.
	LIEntrySize = 4

	// LFLHEntrySize is the width of one lf/lh element: a u32 cell offset
	// followed by a 4-byte hint (lf) or hash (lh).
	LFLHEntrySize = 8
)

// Big Data ("db") field offsets, relative to the start of the cell payload.
const (
	DBCountOffset = 0x02 // u16, number of segments
	DBListOffset  = 0x04 // u32, HCELL_INDEX of the segment-list cell

	// DBHeaderSize is the fixed size of a db header.
	DBHeaderSize = 0x0C

	// DBSegmentSize is the maximum payload carried by one Big Data
	// segment cell: 16384 (page) - 4 (cell header) - 36 (db bookkeeping
	// overhead the original format reserves) rounds to the well-known
	// 16344 constant used throughout the ecosystem.
	DBSegmentSize = 16344

	// DBMinSegmentCount is the minimum segment count for a structurally
	// valid db record; values that fit in fewer segments use inline or
	// single-cell storage instead.
	DBMinSegmentCount = 2
)

// Registry value data type codes (u32), per spec.md §6.
const (
	RegNone                     uint32 = 0
	RegSZ                       uint32 = 1
	RegExpandSZ                 uint32 = 2
	RegBinary                   uint32 = 3
	RegDWord                    uint32 = 4
	RegDWordBigEndian           uint32 = 5
	RegLink                     uint32 = 6
	RegMultiSZ                  uint32 = 7
	RegResourceList             uint32 = 8
	RegFullResourceDescriptor   uint32 = 9
	RegResourceRequirementsList uint32 = 10
	RegQWord                    uint32 = 11
)

// IsKnownDataType reports whether code is one of the REG_* constants above.
func IsKnownDataType(code uint32) bool {
	switch code {
	case RegNone, RegSZ, RegExpandSZ, RegBinary, RegDWord, RegDWordBigEndian,
		RegLink, RegMultiSZ, RegResourceList, RegFullResourceDescriptor,
		RegResourceRequirementsList, RegQWord:
		return true
	default:
		return false
	}
}
