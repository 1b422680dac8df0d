// Package table implements the language's only built-in associative
// container: an open-addressed Tag-to-Tag hash table with tombstone
// deletion, grounded on original_source/types/table.c.
//
// Table cannot be part of internal/value directly: a Table entry's key
// and value are value.Tag, so the table needs to import value, and
// value.Tag needs a Table-discriminant variant. To avoid the resulting
// import cycle, value.Tag stores a Table payload as an opaque
// unsafe.Pointer and this package registers the operations Tag needs
// (Eq, Hash, Len, Free, Print) once, from init, via
// value.RegisterTableHooks.
package table

import (
	"strings"
	"unsafe"

	"github.com/slang-lang/slangc/internal/value"
	"github.com/slang-lang/slangc/internal/varray"
)

func init() {
	value.RegisterTableHooks(value.ContainerHooks{
		Eq:    func(a, b unsafe.Pointer) bool { return fromPtr(a).Eq(fromPtr(b)) },
		Hash:  func(p unsafe.Pointer) uint64 { return fromPtr(p).hashSelf() },
		Len:   func(p unsafe.Pointer) int { return fromPtr(p).Len() },
		Free:  func(p unsafe.Pointer) { fromPtr(p).Free() },
		Print: func(p unsafe.Pointer) string { return fromPtr(p).Repr() },
	})
}

func fromPtr(p unsafe.Pointer) *Table { return (*Table)(p) }

// Entry is one slot of the table's backing array.
type Entry struct {
	Key value.Tag
	Val value.Tag
}

// Reserved sentinel keys. A table entry whose key bit-equals one of
// these is not a live entry; real keys can never take these values
// because they are drawn from the same user-symbol space the compiler
// never emits directly.
var (
	tombstoneKey = value.UserSymbol(0)
	emptyKey     = value.UserSymbol(1)
)

// Table is an open-addressed hash table keyed by value.Tag.
//
// Not safe for concurrent use; see Stats for the one piece of mutable
// package state that makes that explicit.
type Table struct {
	array   varray.Array[Entry]
	realLen int
}

// New returns an empty, ready-to-use Table.
func New() *Table { return &Table{} }

// AsTag wraps t as an owned or borrowed Table tag.
func (t *Table) AsTag(owned bool) value.Tag {
	return value.NewTablePtr(unsafe.Pointer(t), owned)
}

func isUnset(k value.Tag) bool { return k.BitsEqual(emptyKey) || k.BitsEqual(tombstoneKey) }

// keyEq is the table's own notion of key equality, which differs from
// value.Tag.Eq for the container-shaped discriminants: a Table or List
// key compares by pointer identity (two distinct tables are different
// keys even if structurally equal — structural equality on a mutable
// container key would let a caller invalidate the table's hash
// invariant by mutating the key after insertion), and an Error key
// recurses with this same rule on its wrapped tag rather than Error's
// ordinary structural Eq. Every other type falls back to value.Tag.Eq.
func keyEq(a, b value.Tag) bool {
	switch a.Type() {
	case value.TypeTable, value.TypeList:
		bp, ok := b.RawPointer()
		if !ok {
			return false
		}
		ap, _ := a.RawPointer()
		return ap == bp
	case value.TypeError:
		if !b.IsError() {
			return false
		}
		return keyEq(*a.AsError(), *b.AsError())
	default:
		return a.Eq(b)
	}
}

// Stats holds the debug-only query/collision counters from the original
// implementation's SLANG_DEBUG build. They are meaningful only when
// CollectStats is true, and are never safe to read concurrently with a
// table operation on another goroutine.
type Stats struct {
	Queries    uint64
	Collisions uint64
}

// CollectStats gates whether table operations maintain the Stats
// counters at all; leave it false (the default) to avoid paying for
// bookkeeping nobody reads.
var CollectStats bool

var stats Stats

// DebugStats returns the process-wide query/collision counters
// accumulated since the last ResetDebugStats, or since startup.
func DebugStats() Stats { return stats }

// ResetDebugStats zeroes the counters DebugStats reports.
func ResetDebugStats() { stats = Stats{} }

func (t *Table) findEntryIndex(key value.Tag) int {
	if CollectStats {
		stats.Queries++
	}
	cap := t.array.Cap()
	mask := cap - 1
	idx := int(key.Hash()) & mask
	firstTombstone := -1
	for {
		entry := t.array.Get(idx)
		switch {
		case entry.Key.BitsEqual(emptyKey):
			if firstTombstone >= 0 {
				return firstTombstone
			}
			return idx
		case entry.Key.BitsEqual(tombstoneKey):
			if firstTombstone < 0 {
				firstTombstone = idx
			}
		default:
			if keyEq(entry.Key, key) {
				return idx
			}
			if CollectStats {
				stats.Collisions++
			}
		}
		idx = (idx + 1) & mask
	}
}

func (t *Table) grow() int {
	oldCap := t.array.Cap()
	newCap := t.array.Grow()
	if newCap == 0 {
		return 0
	}
	for i := oldCap; i < newCap; i++ {
		t.array.Set(i, Entry{Key: emptyKey})
	}
	if oldCap == 0 {
		return newCap
	}

	start := 0
	for ; start < oldCap; start++ {
		if t.array.Get(start).Key.BitsEqual(emptyKey) {
			break
		}
	}

	for i := 0; t.array.Len() > t.realLen; i++ {
		entry := t.array.Get(i)
		if entry.Key.BitsEqual(tombstoneKey) {
			t.array.Set(i, Entry{Key: emptyKey})
			t.array.Truncate(t.array.Len() - 1)
		}
	}

	mask := oldCap - 1
	remaining := t.realLen
	for i := (start + 1) & mask; remaining > 0; i = (i + 1) & mask {
		entry := t.array.Get(i)
		if entry.Key.BitsEqual(emptyKey) {
			continue
		}
		remaining--
		t.array.Set(i, Entry{Key: emptyKey})
		dst := t.findEntryIndex(entry.Key)
		t.array.Set(dst, entry)
	}
	return newCap
}

// Set inserts or overwrites key with val. key must not bit-equal either
// reserved sentinel.
func (t *Table) Set(key, val value.Tag) {
	if isUnset(key) {
		panic("table: key collides with a reserved sentinel symbol")
	}
	length := t.array.Len()
	cap := t.array.Cap()
	if length+1 > (cap/7)*5 {
		if t.grow() == 0 {
			panic("table: grow failed")
		}
		length = t.array.Len()
	}
	idx := t.findEntryIndex(key)
	entry := t.array.Get(idx)
	switch {
	case entry.Key.BitsEqual(tombstoneKey):
		entry.Key = key
		t.realLen++
	case entry.Key.BitsEqual(emptyKey):
		entry.Key = key
		t.array.Truncate(length + 1)
		t.realLen++
	default:
		entry.Val.Free()
		key.Free()
	}
	entry.Val = val
	t.array.Set(idx, entry)
}

// Get looks up key, returning its value and whether it was present.
func (t *Table) Get(key value.Tag) (value.Tag, bool) {
	if isUnset(key) {
		panic("table: key collides with a reserved sentinel symbol")
	}
	if t.realLen == 0 {
		return value.Tag{}, false
	}
	idx := t.findEntryIndex(key)
	entry := t.array.Get(idx)
	if isUnset(entry.Key) {
		return value.Tag{}, false
	}
	return entry.Val, true
}

// Delete removes key, freeing its key and value, and reports whether it
// was present.
func (t *Table) Delete(key value.Tag) bool {
	if isUnset(key) {
		panic("table: key collides with a reserved sentinel symbol")
	}
	if t.realLen == 0 {
		return false
	}
	idx := t.findEntryIndex(key)
	entry := t.array.Get(idx)
	if isUnset(entry.Key) {
		return false
	}
	entry.Key.Free()
	entry.Val.Free()
	t.array.Set(idx, Entry{Key: tombstoneKey})
	t.realLen--
	return true
}

// Len reports the table's backing slot count actually in use, including
// tombstones not yet reclaimed by a grow — this mirrors table_len in the
// reference implementation, which is what truthiness checks against.
func (t *Table) Len() int { return t.array.Len() }

// RealLen reports the number of live (non-tombstone) entries.
func (t *Table) RealLen() int { return t.realLen }

// Eq compares two tables structurally: same real length, and every live
// key in t maps to an Eq value in o.
func (t *Table) Eq(o *Table) bool {
	if t == o {
		return true
	}
	if t.realLen != o.realLen {
		return false
	}
	remaining := t.realLen
	for i := 0; remaining > 0; i++ {
		entry := t.array.Get(i)
		if isUnset(entry.Key) {
			continue
		}
		remaining--
		val, ok := o.Get(entry.Key)
		if !ok || !entry.Val.Eq(val) {
			return false
		}
	}
	return true
}

func (t *Table) hashSelf() uint64 {
	return uint64(uintptr(unsafe.Pointer(t))) >> 4
}

// Free releases every live entry's key and value.
func (t *Table) Free() {
	remaining := t.realLen
	for i := 0; remaining > 0; i++ {
		entry := t.array.Get(i)
		if isUnset(entry.Key) {
			continue
		}
		remaining--
		entry.Key.Free()
		entry.Val.Free()
	}
	t.array.Free()
	t.realLen = 0
}

// Repr renders the table as `{k: v, k: v}`.
func (t *Table) Repr() string {
	var b strings.Builder
	b.WriteByte('{')
	remaining := t.realLen
	first := true
	for i := 0; remaining > 0; i++ {
		entry := t.array.Get(i)
		if isUnset(entry.Key) {
			continue
		}
		remaining--
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(entry.Key.Repr())
		b.WriteString(": ")
		b.WriteString(entry.Val.Repr())
	}
	b.WriteByte('}')
	return b.String()
}
