package hive

import "github.com/regcore/nthive/internal/format"

// ValueList is a flat array of HCELL_INDEX references to vk cells, as
// referenced by an nk's CHILD_LIST.
type ValueList struct {
	Refs []uint32
}

// Len returns the number of values in the list.
func (vl ValueList) Len() int { return len(vl.Refs) }

// ParseValueList parses payload as count consecutive uint32 VK offsets.
func ParseValueList(payload []byte, count int) (ValueList, error) {
	need := count * format.LIEntrySize
	if len(payload) < need {
		return ValueList{}, &format.InvalidDataSize{Offset: 0, Expected: need, Actual: len(payload)}
	}
	refs := make([]uint32, count)
	for i := range refs {
		refs[i] = format.ReadU32(payload, i*format.LIEntrySize)
	}
	return ValueList{Refs: refs}, nil
}
