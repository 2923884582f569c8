// Package name implements Windows-compatible registry name comparison: the
// case-insensitive, code-unit-at-a-time ordering the kernel applies to key
// and value names, plus decoding of the two on-disk name encodings
// (Latin-1 "compressed" and UTF-16LE).
package name

import (
	"golang.org/x/text/encoding/charmap"
)

// Encoding tags which of the two on-disk name encodings a Name holds.
type Encoding int

const (
	Latin1 Encoding = iota
	UTF16LE
)

// Name is a zero-copy view over a key or value name's raw on-disk bytes.
// It is a tagged 2-variant struct rather than a class hierarchy: exactly
// one encoding is ever in play for a given name, selected at parse time by
// the owning nk/vk's compression flag.
type Name struct {
	raw      []byte
	encoding Encoding
}

// New wraps raw name bytes without copying them. compressed selects
// Latin-1 (true) vs UTF-16LE (false), mirroring the nk/vk flag bit.
func New(raw []byte, compressed bool) Name {
	enc := UTF16LE
	if compressed {
		enc = Latin1
	}
	return Name{raw: raw, encoding: enc}
}

// IsEmpty reports whether the name has zero length.
func (n Name) IsEmpty() bool { return len(n.raw) == 0 }

// Len returns the name's length in UTF-16 code units.
func (n Name) Len() int {
	if n.encoding == Latin1 {
		return len(n.raw)
	}
	return len(n.raw) / 2
}

// String decodes the name to a Go string (UTF-8). Latin-1 bytes in the
// ASCII range decode without going through the charmap decoder; 0x80-0xFF
// go through golang.org/x/text's Windows-1252 table, matching how Windows
// itself treats compressed names. Unpaired or invalid UTF-16 surrogates
// decode to U+FFFD rather than failing, since a name with no valid Unicode
// reading is still a legal (if unusual) registry name.
func (n Name) String() string {
	if n.encoding == Latin1 {
		if isASCII(n.raw) {
			return string(n.raw)
		}
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(n.raw)
		if err != nil {
			return string(n.raw)
		}
		return string(decoded)
	}
	return decodeUTF16LE(n.raw)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// codeUnitAt returns the i-th UTF-16 code unit of the name, widening
// Latin-1 bytes to their identical Unicode code point (Latin-1's 256 code
// points map 1:1 onto U+0000-U+00FF).
func (n Name) codeUnitAt(i int) uint16 {
	if n.encoding == Latin1 {
		return uint16(n.raw[i])
	}
	off := i * 2
	return uint16(n.raw[off]) | uint16(n.raw[off+1])<<8
}
