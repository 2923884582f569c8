package name

import "unicode/utf16"

// decodeUTF16LE decodes a little-endian UTF-16 byte string to UTF-8.
// Unpaired or invalid surrogates become U+FFFD rather than aborting, since
// a name with no valid Unicode reading is still a legal on-disk name.
func decodeUTF16LE(b []byte) string {
	return string(utf16.Decode(codeUnits(b)))
}

func codeUnits(b []byte) []uint16 {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return units
}

// DecodeString decodes a REG_SZ/REG_EXPAND_SZ value payload (UTF-16LE) to
// UTF-8, stopping at the first NUL code unit rather than requiring one:
// some applications erroneously store NUL-terminated strings whose declared
// length includes the terminator, others don't terminate at all.
func DecodeString(b []byte) string {
	runes := utf16.Decode(codeUnits(b))
	for i, r := range runes {
		if r == 0 {
			runes = runes[:i]
			break
		}
	}
	return string(runes)
}

// DecodeMultiString decodes a REG_MULTI_SZ value payload: a sequence of
// NUL-terminated UTF-16LE strings, itself terminated by an empty string
// (i.e. two consecutive NUL code units, or simply running out of data).
func DecodeMultiString(b []byte) []string {
	units := codeUnits(b)
	var out []string
	start := 0
	for i := 0; i < len(units); i++ {
		if units[i] != 0 {
			continue
		}
		if i == start {
			break // empty string: end-of-list marker
		}
		out = append(out, string(utf16.Decode(units[start:i])))
		start = i + 1
	}
	if start < len(units) {
		out = append(out, string(utf16.Decode(units[start:])))
	}
	return out
}
