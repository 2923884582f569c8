package name

import (
	"sort"
	"unicode/utf16"
)

// upperFold returns the uppercase folding of a BMP UTF-16 code unit, or the
// unit unchanged if it has no entry in bmpUppercaseTable (already
// uppercase, case-less, or outside the table's coverage). The table has no
// entries for surrogate code units, so each half of an astral-plane
// surrogate pair is returned unchanged.
func upperFold(unit uint16) uint16 {
	i := sort.Search(len(bmpUppercaseTable), func(i int) bool {
		return bmpUppercaseTable[i].Lower >= unit
	})
	if i < len(bmpUppercaseTable) && bmpUppercaseTable[i].Lower == unit {
		return bmpUppercaseTable[i].Upper
	}
	return unit
}

// Compare orders two Names the way Windows orders registry key and value
// names: case-insensitive over the Basic Multilingual Plane, code unit by
// code unit, with a shorter name that is otherwise an exact prefix of a
// longer one sorting first. Characters outside the BMP (surrogate pairs)
// have no case folding applied — each surrogate half compares by its raw
// value, so astral-plane characters compare case-sensitively. This matches
// Windows' own behavior, which only folds the BMP.
func Compare(a, b Name) int {
	return cmpCodeUnits(a.codeUnitAt, a.Len(), b.codeUnitAt, b.Len())
}

// CompareString compares a Name against a plain Go string, encoding the
// string to UTF-16 for the comparison.
func CompareString(a Name, s string) int {
	units := utf16.Encode([]rune(s))
	at := func(i int) uint16 { return units[i] }
	return cmpCodeUnits(a.codeUnitAt, a.Len(), at, len(units))
}

// Equal reports whether a and b compare case-insensitively equal.
func Equal(a, b Name) bool { return Compare(a, b) == 0 }

// EqualString reports whether n compares case-insensitively equal to s.
func EqualString(n Name, s string) bool { return CompareString(n, s) == 0 }

func cmpCodeUnits(a func(int) uint16, alen int, b func(int) uint16, blen int) int {
	n := alen
	if blen < n {
		n = blen
	}
	for i := 0; i < n; i++ {
		au, bu := upperFold(a(i)), upperFold(b(i))
		if au != bu {
			if au < bu {
				return -1
			}
			return 1
		}
	}
	switch {
	case alen < blen:
		return -1
	case alen > blen:
		return 1
	default:
		return 0
	}
}
