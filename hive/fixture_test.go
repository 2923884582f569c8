package hive

import "github.com/regcore/nthive/internal/format"

// fixtureBuilder assembles a minimal, valid hive blob by hand: a REGF base
// block carrying only the signature and root cell pointer this decoder
// needs, followed by a flat run of 8-byte-aligned cells. Hive Bins are a
// pure allocation-paging concept the cell layer never walks (see
// cell.go), so the builder never emits bin headers — only cells.
type fixtureBuilder struct {
	cells []byte
}

// addCell appends payload as a new allocated cell and returns its
// data_offset (relative to format.HiveDataBase).
func (b *fixtureBuilder) addCell(payload []byte) uint32 {
	off := uint32(len(b.cells))
	total := format.CellHeaderSize + len(payload)
	if rem := total % format.CellAlignment; rem != 0 {
		total += format.CellAlignment - rem
	}
	cell := make([]byte, total)
	format.PutI32(cell, 0, -int32(total))
	copy(cell[format.CellHeaderSize:], payload)
	b.cells = append(b.cells, cell...)
	return off
}

// finish assembles the full hive blob with root pointing at rootOffset.
func (b *fixtureBuilder) finish(rootOffset uint32) []byte {
	out := make([]byte, format.HiveDataBase, format.HiveDataBase+len(b.cells))
	copy(out[:4], format.REGFSignature[:])
	format.PutU32(out, format.REGFRootCellOffset, rootOffset)
	return append(out, b.cells...)
}

// nkFields describes one Key Node for buildNK.
type nkFields struct {
	name            string
	compressedName  bool
	subkeyListOff   uint32
	subkeyCount     uint32
	valueListOff    uint32
	valueCount      uint32
}

func buildNK(f nkFields) []byte {
	nameBytes := encodeFixtureName(f.name, f.compressedName)
	payload := make([]byte, format.NKNameOffset+len(nameBytes))
	copy(payload[0:2], format.NKSignature[:])
	var flags uint16
	if f.compressedName {
		flags |= format.NKFlagCompressedName
	}
	format.PutU16(payload, format.NKFlagsOffset, flags)
	format.PutU32(payload, format.NKSubkeyCountOffset, f.subkeyCount)
	format.PutU32(payload, format.NKSubkeyListOffset, f.subkeyListOff)
	format.PutU32(payload, format.NKValueCountOffset, f.valueCount)
	format.PutU32(payload, format.NKValueListOffset, f.valueListOff)
	format.PutU16(payload, format.NKNameLenOffset, uint16(len(nameBytes)))
	copy(payload[format.NKNameOffset:], nameBytes)
	return payload
}

// vkFields describes one Key Value for buildVK. Exactly one of
// smallData/inlineData/bigDataOff is meaningful, selected the same way
// the real data-size field would select it.
type vkFields struct {
	name           string
	asciiName      bool
	dataType       uint32
	smallData      []byte // only its length is used: the declared size of the cell at smallDataOff
	smallDataOff   uint32 // data_offset into an already-built small-data cell
	inlineData     []byte // <= 4 bytes, stored directly in data_offset
	bigDataOff     uint32 // data_offset of a "db" cell
	bigDataSize    int    // declared size when using bigDataOff
	badSignature   bool   // corrupt the signature for the corruption scenario
}

func buildVK(f vkFields) []byte {
	nameBytes := encodeFixtureName(f.name, f.asciiName)
	payload := make([]byte, format.VKNameOffset+len(nameBytes))
	sig := format.VKSignature
	copy(payload[0:2], sig[:])
	if f.badSignature {
		payload[0], payload[1] = 'x', 'x'
	}
	var flags uint16
	if f.asciiName {
		flags |= format.VKFlagASCIIName
	}
	format.PutU16(payload, format.VKFlagsOffset, flags)
	format.PutU32(payload, format.VKTypeOffset, f.dataType)
	format.PutU16(payload, format.VKNameLenOffset, uint16(len(nameBytes)))
	copy(payload[format.VKNameOffset:], nameBytes)

	switch {
	case f.inlineData != nil:
		size := uint32(len(f.inlineData)) | format.VKDataInlineBit
		format.PutU32(payload, format.VKDataLenOffset, size)
		copy(payload[format.VKDataOffOffset:format.VKDataOffOffset+4], f.inlineData)
	case f.bigDataSize > 0:
		format.PutU32(payload, format.VKDataLenOffset, uint32(f.bigDataSize))
		format.PutU32(payload, format.VKDataOffOffset, f.bigDataOff)
	default:
		format.PutU32(payload, format.VKDataLenOffset, uint32(len(f.smallData)))
		format.PutU32(payload, format.VKDataOffOffset, f.smallDataOff)
	}
	return payload
}

// encodeFixtureName encodes s as Latin-1 (ASCII-only, for test purposes)
// or UTF-16LE depending on compressed.
func encodeFixtureName(s string, compressed bool) []byte {
	if compressed {
		return []byte(s)
	}
	runes := []rune(s)
	out := make([]byte, 0, len(runes)*2)
	for _, r := range runes {
		if r <= 0xFFFF {
			out = append(out, byte(r), byte(r>>8))
			continue
		}
		r -= 0x10000
		hi := 0xD800 + (r >> 10)
		lo := 0xDC00 + (r & 0x3FF)
		out = append(out, byte(hi), byte(hi>>8), byte(lo), byte(lo>>8))
	}
	return out
}

// buildIndexList builds an li/lf/lh payload. extras is nil for li,
// or one 4-byte value per entry for lf (ASCII hint) / lh (hash), matching
// kind.
func buildIndexList(sig [2]byte, offsets []uint32, extras [][4]byte) []byte {
	entrySize := format.LIEntrySize
	if extras != nil {
		entrySize = format.LFLHEntrySize
	}
	payload := make([]byte, format.IdxListOffset+len(offsets)*entrySize)
	copy(payload[0:2], sig[:])
	format.PutU16(payload, format.IdxCountOffset, uint16(len(offsets)))
	for i, off := range offsets {
		base := format.IdxListOffset + i*entrySize
		format.PutU32(payload, base, off)
		if extras != nil {
			copy(payload[base+4:base+8], extras[i][:])
		}
	}
	return payload
}

// buildDB builds a "db" header payload plus its segment-offset list cell,
// given the already-resolved data_offset of each segment cell.
func (b *fixtureBuilder) buildDB(segmentOffsets []uint32) uint32 {
	listPayload := make([]byte, len(segmentOffsets)*format.LIEntrySize)
	for i, off := range segmentOffsets {
		format.PutU32(listPayload, i*format.LIEntrySize, off)
	}
	listOff := b.addCell(listPayload)

	header := make([]byte, format.DBHeaderSize)
	copy(header[0:2], format.DBSignature[:])
	format.PutU16(header, format.DBCountOffset, uint16(len(segmentOffsets)))
	format.PutU32(header, format.DBListOffset, listOff)
	return b.addCell(header)
}
