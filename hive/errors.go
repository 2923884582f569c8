package hive

import "github.com/regcore/nthive/internal/format"

// Structural error taxonomy, re-exported from internal/format so callers
// never need to import that package directly. Each type carries the
// absolute file offset of the offending field; all are plain aliases, so
// errors.As against either the format or hive spelling succeeds.
type (
	InvalidTwoByteSignature     = format.InvalidTwoByteSignature
	InvalidHeaderSize           = format.InvalidHeaderSize
	InvalidSizeField            = format.InvalidSizeField
	InvalidDataSize             = format.InvalidDataSize
	InvalidCellSize             = format.InvalidCellSize
	InvalidDataOffset           = format.InvalidDataOffset
	UnsupportedKeyValueDataType = format.UnsupportedKeyValueDataType
	InvalidSubkeyListSignature  = format.InvalidSubkeyListSignature
)
