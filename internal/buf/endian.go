package buf

import "encoding/binary"

// U16LE reads a little-endian uint16 at off, bounds-checked against b.
func U16LE(b []byte, off int) (uint16, error) {
	s, err := Sub(b, off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(s), nil
}

// U32LE reads a little-endian uint32 at off, bounds-checked against b.
func U32LE(b []byte, off int) (uint32, error) {
	s, err := Sub(b, off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(s), nil
}

// I32LE reads a little-endian, signed int32 at off, bounds-checked against b.
// Used for cell-size headers, where the sign bit distinguishes allocated
// cells (negative) from free ones (positive).
func I32LE(b []byte, off int) (int32, error) {
	v, err := U32LE(b, off)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// U64LE reads a little-endian uint64 at off, bounds-checked against b.
func U64LE(b []byte, off int) (uint64, error) {
	s, err := Sub(b, off, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(s), nil
}

// U32BE reads a big-endian uint32 at off, bounds-checked against b. Used
// only for REG_DWORD_BIG_ENDIAN values.
func U32BE(b []byte, off int) (uint32, error) {
	s, err := Sub(b, off, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(s), nil
}
