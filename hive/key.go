package hive

import (
	"errors"

	"github.com/regcore/nthive/hive/name"
	"github.com/regcore/nthive/internal/format"
)

// Key is a zero-copy view over one Key Node and the hive it belongs to.
// Subkey/value navigation always resolves offsets fresh against hiveBuf
// rather than caching resolved children, per the format's lack of
// back-edges: a Key never points at its parent or siblings, only down.
type Key struct {
	hiveBuf []byte
	nk      NK
}

// Name returns the key's decoded name. The root key's own name is
// frequently a fixed sentinel written by the tool that created the hive.
func (k Key) Name() (string, error) {
	n, err := k.nk.Name()
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// Subkey looks up an immediate child key by case-insensitive name.
// ok is false with a nil error when no subkey of that name exists;
// err is non-nil only when the hive's subkey structures are themselves
// corrupt, distinguishing "absent" from "unreadable" per spec.
func (k Key) Subkey(name string) (Key, bool, error) {
	list, has, err := k.nk.ResolveSubkeyList(k.hiveBuf)
	if err != nil {
		return Key{}, false, err
	}
	if !has {
		return Key{}, false, nil
	}
	off, found, err := lookupSubkey(k.hiveBuf, list, name)
	if err != nil {
		return Key{}, false, err
	}
	if !found {
		return Key{}, false, nil
	}
	child, err := (&Hive{data: k.hiveBuf}).keyAt(off)
	if err != nil {
		return Key{}, false, err
	}
	return child, true, nil
}

// Subkeys returns a pull iterator over every immediate child key, in
// on-disk order. A structurally corrupt element surfaces as an error from
// Next without aborting iteration over its siblings. If the subkey list
// itself cannot be resolved, the first call to Next reports that error
// with ok=false.
func (k Key) Subkeys() *SubkeyIter {
	list, has, err := k.nk.ResolveSubkeyList(k.hiveBuf)
	if err != nil {
		return &SubkeyIter{err: err}
	}
	if !has {
		return &SubkeyIter{done: true}
	}
	return &SubkeyIter{hiveBuf: k.hiveBuf, refs: list.Refs(k.hiveBuf)}
}

// Value looks up a value attached to this key by case-insensitive name.
// An empty name looks up the key's unnamed "(Default)" value.
func (k Key) Value(valueName string) (KeyValue, bool, error) {
	vl, has, err := k.nk.ResolveValueList(k.hiveBuf)
	if err != nil {
		return KeyValue{}, false, err
	}
	if !has {
		return KeyValue{}, false, nil
	}
	for _, off := range vl.Refs {
		vk, err := k.resolveVK(off)
		if err != nil {
			continue // a corrupt sibling must not hide a valid match
		}
		n, err := vk.Name()
		if err != nil {
			continue
		}
		if name.EqualString(n, valueName) {
			return KeyValue{hiveBuf: k.hiveBuf, vk: vk}, true, nil
		}
	}
	return KeyValue{}, false, nil
}

// Values returns a pull iterator over every value attached to this key,
// in on-disk order (values are never sorted). If the value list itself
// cannot be resolved, the first call to Next reports that error with
// ok=false.
func (k Key) Values() *ValueIter {
	vl, has, err := k.nk.ResolveValueList(k.hiveBuf)
	if err != nil {
		return &ValueIter{err: err}
	}
	if !has {
		return &ValueIter{done: true}
	}
	return &ValueIter{hiveBuf: k.hiveBuf, refs: vl.Refs}
}

func (k Key) resolveVK(dataOffset uint32) (VK, error) {
	cell, err := ResolveCell(k.hiveBuf, dataOffset)
	if err != nil {
		return VK{}, err
	}
	payload, err := cell.Payload()
	if err != nil {
		return VK{}, err
	}
	return ParseVK(payload)
}

// SubkeyIter pulls through a flattened list of subkey references,
// resolving and parsing one Key Node per call to Next.
type SubkeyIter struct {
	hiveBuf []byte
	refs    []SubkeyRef
	idx     int
	err     error
	done    bool
}

// Next returns the next child Key. ok is false once the iterator is
// exhausted; it is fused (once exhausted, every later call returns the
// same false with no error). A corrupt element surfaces as a non-nil err
// with ok=true, matching spec's error-element-not-termination rule.
func (it *SubkeyIter) Next() (key Key, ok bool, err error) {
	if it.done {
		return Key{}, false, nil
	}
	if it.idx >= len(it.refs) {
		it.done = true
		return Key{}, false, it.err
	}
	ref := it.refs[it.idx]
	it.idx++
	if ref.Err != nil {
		return Key{}, true, ref.Err
	}
	h := &Hive{data: it.hiveBuf}
	child, err := h.keyAt(ref.Offset)
	if err != nil {
		return Key{}, true, err
	}
	return child, true, nil
}

// ValueIter pulls through an nk's flat value list, resolving and parsing
// one Key Value per call to Next.
type ValueIter struct {
	hiveBuf []byte
	refs    []uint32
	idx     int
	err     error
	done    bool
}

// Next returns the next Key Value. See SubkeyIter.Next for the
// ok/err contract.
func (it *ValueIter) Next() (kv KeyValue, ok bool, err error) {
	if it.done {
		return KeyValue{}, false, nil
	}
	if it.idx >= len(it.refs) {
		it.done = true
		return KeyValue{}, false, it.err
	}
	off := it.refs[it.idx]
	it.idx++
	cell, err := ResolveCell(it.hiveBuf, off)
	if err != nil {
		return KeyValue{}, true, err
	}
	payload, err := cell.Payload()
	if err != nil {
		return KeyValue{}, true, err
	}
	vk, err := ParseVK(payload)
	if err != nil {
		// ParseVK reports offsets relative to the payload; rebase them
		// onto the payload's absolute position in the file.
		base := cell.Off + format.CellHeaderSize
		var sigErr *format.InvalidTwoByteSignature
		var sizeErr *format.InvalidHeaderSize
		switch {
		case errors.As(err, &sigErr):
			sigErr.Offset += base
		case errors.As(err, &sizeErr):
			sizeErr.Offset += base
		}
		return KeyValue{}, true, err
	}
	return KeyValue{hiveBuf: it.hiveBuf, vk: vk}, true, nil
}

// lookupSubkey dispatches to the lookup strategy matching list's on-disk
// layout: hash binary search for lh, name binary search for lf and for ri
// over sorted leaves, linear scan for li (unsorted) and as a safety-net
// fallback whenever the sortedness a binary search depends on cannot be
// confirmed.
func lookupSubkey(hiveBuf []byte, list SubkeyList, target string) (uint32, bool, error) {
	switch list.Kind {
	case ListLH:
		return lookupLH(hiveBuf, list, target)
	case ListLF:
		return lookupSortedLeaf(hiveBuf, list, target)
	case ListRI:
		return lookupRI(hiveBuf, list, target)
	default: // ListLI and anything unrecognized: unsorted, linear scan
		return linearScan(hiveBuf, list, target)
	}
}

func nameAt(hiveBuf []byte, nkOffset uint32) (name.Name, error) {
	cell, err := ResolveCell(hiveBuf, nkOffset)
	if err != nil {
		return name.Name{}, err
	}
	payload, err := cell.Payload()
	if err != nil {
		return name.Name{}, err
	}
	nk, err := ParseNK(payload)
	if err != nil {
		return name.Name{}, err
	}
	return nk.Name()
}

func linearScan(hiveBuf []byte, list SubkeyList, target string) (uint32, bool, error) {
	for _, ref := range list.Refs(hiveBuf) {
		if ref.Err != nil {
			continue
		}
		n, err := nameAt(hiveBuf, ref.Offset)
		if err != nil {
			continue
		}
		if name.EqualString(n, target) {
			return ref.Offset, true, nil
		}
	}
	return 0, false, nil
}

// lookupSortedLeaf binary-searches an lf leaf (the key's own list or one
// reached through ri) by case-insensitive name, per the on-disk sortedness
// invariant. If the leaf turns out not to be sorted — the open question
// spec flags for the lh hash algorithm applies equally to trusting
// sortedness blindly — it falls back to a linear scan instead of risking
// a missed match.
func lookupSortedLeaf(hiveBuf []byte, list SubkeyList, target string) (uint32, bool, error) {
	n := list.Count()
	names := make([]name.Name, n)
	for i := 0; i < n; i++ {
		nm, err := nameAt(hiveBuf, list.cellOffsetAt(i))
		if err != nil {
			return linearScan(hiveBuf, list, target)
		}
		names[i] = nm
	}
	if !sortedAscending(names) {
		return linearScan(hiveBuf, list, target)
	}
	lo, hi := 0, n-1
	for lo <= hi {
		mid := (lo + hi) / 2
		c := name.CompareString(names[mid], target)
		switch {
		case c == 0:
			return list.cellOffsetAt(mid), true, nil
		case c < 0:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return 0, false, nil
}

func sortedAscending(names []name.Name) bool {
	for i := 1; i < len(names); i++ {
		if name.Compare(names[i-1], names[i]) > 0 {
			return false
		}
	}
	return true
}

// lookupLH binary-searches a hash leaf by the lh name hash, then linearly
// scans any run of equal-hash entries comparing full names (hash
// collisions are possible and expected). Falls back to a full linear scan
// if the hash column is not monotonically non-decreasing, since a binary
// search over an unsorted column can silently miss the target.
func lookupLH(hiveBuf []byte, list SubkeyList, target string) (uint32, bool, error) {
	n := list.Count()
	hashes := make([]uint32, n)
	for i := 0; i < n; i++ {
		hashes[i] = list.HashAt(i)
	}
	for i := 1; i < n; i++ {
		if hashes[i-1] > hashes[i] {
			return linearScan(hiveBuf, list, target)
		}
	}
	want := name.HashString(target)
	lo, hi := 0, n-1
	start := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case hashes[mid] == want:
			start = mid
			hi = mid - 1 // walk left to the first equal-hash entry
		case hashes[mid] < want:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	if start == -1 {
		return 0, false, nil
	}
	for i := start; i < n && hashes[i] == want; i++ {
		nm, err := nameAt(hiveBuf, list.cellOffsetAt(i))
		if err != nil {
			continue
		}
		if name.EqualString(nm, target) {
			return list.cellOffsetAt(i), true, nil
		}
	}
	return 0, false, nil
}

// lookupRI binary-searches across an Index Root's child leaves by
// comparing target against each leaf's first and last name to locate the
// containing leaf, then delegates to that leaf's own lookup strategy.
// Per format invariant, Index Roots never point at another Index Root, so
// each child resolves as exactly one of li/lf/lh.
func lookupRI(hiveBuf []byte, list SubkeyList, target string) (uint32, bool, error) {
	n := list.Count()
	leaves := make([]SubkeyList, 0, n)
	for i := 0; i < n; i++ {
		leaf, err := resolveChildLeaf(hiveBuf, list.cellOffsetAt(i))
		if err != nil {
			continue
		}
		leaves = append(leaves, leaf)
	}
	if len(leaves) == 0 {
		return 0, false, nil
	}

	lo, hi := 0, len(leaves)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		leaf := leaves[mid]
		cnt := leaf.Count()
		if cnt == 0 {
			lo = mid + 1
			continue
		}
		first, err := nameAt(hiveBuf, leaf.cellOffsetAt(0))
		if err != nil {
			return linearScanAll(hiveBuf, leaves, target)
		}
		last, err := nameAt(hiveBuf, leaf.cellOffsetAt(cnt-1))
		if err != nil {
			return linearScanAll(hiveBuf, leaves, target)
		}
		if name.CompareString(first, target) > 0 {
			hi = mid - 1
			continue
		}
		if name.CompareString(last, target) < 0 {
			lo = mid + 1
			continue
		}
		return lookupSubkey(hiveBuf, leaf, target)
	}
	return 0, false, nil
}

func linearScanAll(hiveBuf []byte, leaves []SubkeyList, target string) (uint32, bool, error) {
	for _, leaf := range leaves {
		off, found, err := linearScan(hiveBuf, leaf, target)
		if err != nil {
			return 0, false, err
		}
		if found {
			return off, true, nil
		}
	}
	return 0, false, nil
}

func resolveChildLeaf(hiveBuf []byte, off uint32) (SubkeyList, error) {
	cell, err := ResolveCell(hiveBuf, off)
	if err != nil {
		return SubkeyList{}, err
	}
	payload, err := cell.Payload()
	if err != nil {
		return SubkeyList{}, err
	}
	return ParseSubkeyList(payload, cell.Off+format.CellHeaderSize)
}
