package format

import "encoding/binary"

// Unchecked, fixed-offset readers over a payload whose length has already
// been validated against one of the *HeaderSize / *MinHeader constants
// above. Callers that have not yet established a minimum length must go
// through internal/buf instead.

func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

func ReadI32(b []byte, off int) int32 {
	return int32(ReadU32(b, off))
}

func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

func PutI32(b []byte, off int, v int32) {
	PutU32(b, off, uint32(v))
}

func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}
