package name

// hashMultiplier is the multiplier used by the lh (Hash Leaf) name hash:
// hash = hash*37 + upperFold(code_unit), accumulated over the name's
// UTF-16 code units with the same BMP-only uppercase folding Compare uses.
const hashMultiplier = 37

// Hash computes the lh subkey-list hash for a Name. Two names that compare
// Equal always produce the same Hash, since both route through upperFold;
// the converse is not guaranteed (hash collisions are possible and are
// expected to be resolved by falling back to a full name comparison).
func Hash(n Name) uint32 {
	var h uint32
	l := n.Len()
	for i := 0; i < l; i++ {
		h = h*hashMultiplier + uint32(upperFold(n.codeUnitAt(i)))
	}
	return h
}

// HashString is Hash for a plain Go string, used when probing an lh list
// for a caller-supplied lookup name.
func HashString(s string) uint32 {
	var h uint32
	for _, r := range []rune(s) {
		if r > 0xFFFF {
			// Outside the BMP: no folding applies, and UTF-16 would split
			// this into a surrogate pair contributing two accumulator
			// steps. Hash each surrogate half to stay consistent with
			// Hash's code-unit-at-a-time accumulation.
			hi, lo := surrogatePair(r)
			h = h*hashMultiplier + uint32(hi)
			h = h*hashMultiplier + uint32(lo)
			continue
		}
		h = h*hashMultiplier + uint32(upperFold(uint16(r)))
	}
	return h
}

func surrogatePair(r rune) (hi, lo uint16) {
	r -= 0x10000
	return uint16(0xD800 + (r >> 10)), uint16(0xDC00 + (r & 0x3FF))
}
