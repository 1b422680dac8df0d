package value

import (
	"strings"

	"github.com/slang-lang/slangc/internal/varray"
)

// List is the language's only built-in container besides Table: an
// ordered, growable sequence of Tag, built directly on varray.Array.
type List struct {
	items varray.Array[Tag]
}

// Len returns the number of elements.
func (l *List) Len() int { return l.items.Len() }

// Get returns the element at idx. idx must be < Len().
func (l *List) Get(idx int) Tag { return l.items.Get(idx) }

// Append adds v to the end of the list.
func (l *List) Append(v Tag) { l.items.Append(v) }

// Set overwrites the element at idx. idx must be < Len().
func (l *List) Set(idx int, v Tag) { l.items.Set(idx, v) }

// Pop removes and returns the last element. Panics on an empty list.
func (l *List) Pop() Tag {
	n := l.items.Len()
	if n == 0 {
		panic("value: Pop called on an empty list")
	}
	v := l.items.Get(n - 1)
	l.items.Truncate(n - 1)
	return v
}

// Last returns the final element, and false if the list is empty.
func (l *List) Last() (Tag, bool) {
	n := l.items.Len()
	if n == 0 {
		return Tag{}, false
	}
	return l.items.Get(n - 1), true
}

// Find returns the index of the first element equal (per Eq) to needle.
func (l *List) Find(needle Tag) (int, bool) {
	for i := 0; i < l.items.Len(); i++ {
		if l.items.Get(i).Eq(needle) {
			return i, true
		}
	}
	return 0, false
}

// Eq compares two lists element-wise, in order.
func (l *List) Eq(o *List) bool {
	if l == o {
		return true
	}
	if l.Len() != o.Len() {
		return false
	}
	for i := 0; i < l.Len(); i++ {
		if !l.Get(i).Eq(o.Get(i)) {
			return false
		}
	}
	return true
}

// Free releases every owned element the list holds, then the list's own
// backing storage.
func (l *List) Free() {
	for i := 0; i < l.Len(); i++ {
		l.Get(i).Free()
	}
	l.items.Free()
}

// Repr renders the list the way it appears nested inside a container, or
// at the top level of a `print` of a list value.
func (l *List) Repr() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < l.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l.Get(i).Repr())
	}
	b.WriteByte(']')
	return b.String()
}
