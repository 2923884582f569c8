package format

import "fmt"

// Structural error taxonomy (spec §7). Every error here carries the
// absolute file offset of the offending field, so a corrupt cell can be
// pinpointed without re-walking the structure that produced it. None of
// these are ever raised from a recovered panic — every field access that
// can fail is checked before it is made.

// InvalidTwoByteSignature reports a structure whose leading two-byte tag
// did not match what the caller expected (e.g. "nk", "vk", "lf").
type InvalidTwoByteSignature struct {
	Offset         int
	Expected       string
	Actual         [2]byte
}

func (e *InvalidTwoByteSignature) Error() string {
	return fmt.Sprintf("format: invalid signature at 0x%X: expected %q, got %q", e.Offset, e.Expected, e.Actual[:])
}

// InvalidHeaderSize reports a cell too small to hold a structure's fixed
// header.
type InvalidHeaderSize struct {
	Offset, Expected, Actual int
}

func (e *InvalidHeaderSize) Error() string {
	return fmt.Sprintf("format: invalid header size at 0x%X: expected at least %d bytes, got %d", e.Offset, e.Expected, e.Actual)
}

// InvalidSizeField reports a declared size that does not fit its container
// (e.g. an inline value size field a above 4 bytes).
type InvalidSizeField struct {
	Offset, Expected, Actual int
}

func (e *InvalidSizeField) Error() string {
	return fmt.Sprintf("format: invalid size field at 0x%X: expected <= %d, got %d", e.Offset, e.Expected, e.Actual)
}

// InvalidDataSize reports a declared payload length that the referenced
// cell cannot actually supply.
type InvalidDataSize struct {
	Offset, Expected, Actual int
}

func (e *InvalidDataSize) Error() string {
	return fmt.Sprintf("format: invalid data size at 0x%X: expected %d bytes available, got %d", e.Offset, e.Expected, e.Actual)
}

// InvalidCellSize reports a cell whose size header is zero, positive (a
// free cell where an allocated one was required), not 8-byte aligned, or
// too small to hold even the 4-byte header.
type InvalidCellSize struct {
	Offset int
	Actual int32
}

func (e *InvalidCellSize) Error() string {
	return fmt.Sprintf("format: invalid cell size at 0x%X: %d", e.Offset, e.Actual)
}

// InvalidDataOffset reports a data_offset that does not resolve to a valid
// position within the blob.
type InvalidDataOffset struct {
	Offset int
	Actual uint32
}

func (e *InvalidDataOffset) Error() string {
	return fmt.Sprintf("format: invalid data offset at 0x%X: 0x%X", e.Offset, e.Actual)
}

// UnsupportedKeyValueDataType reports a vk data_type code outside the
// REG_* set this parser understands.
type UnsupportedKeyValueDataType struct {
	Offset int
	Actual uint32
}

func (e *UnsupportedKeyValueDataType) Error() string {
	return fmt.Sprintf("format: unsupported key value data type at 0x%X: %d", e.Offset, e.Actual)
}

// InvalidSubkeyListSignature reports a subkey-list cell whose signature is
// not one of the accepted kinds: li/lf/lh/ri for a key's own list, or
// li/lf/lh for an Index Root element.
type InvalidSubkeyListSignature struct {
	Offset   int
	Expected string
	Actual   [2]byte
}

func (e *InvalidSubkeyListSignature) Error() string {
	return fmt.Sprintf("format: invalid subkey list signature at 0x%X: expected %q, got %q", e.Offset, e.Expected, e.Actual[:])
}
