package value

import "bytes"

// fnvOffset/fnvPrime implement FNV-1a, the hash the reference
// implementation uses for both owned strings and borrowed slices — they
// share one Str representation so String and Slice tags can compare and
// hash identically regardless of which one wraps a given Str.
const (
	fnvOffset uint64 = 2166136261
	fnvPrime  uint64 = 16777619

	// hashSentinel replaces a computed hash of exactly zero, so Str.hash
	// can use 0 to mean "hash not yet cached".
	hashSentinel uint64 = 0x1337
)

// Str is the shared backing storage for both String and Slice tags. The
// two discriminants differ only in which Tag wraps a Str, not in the
// representation: a String tag conventionally owns its bytes and a Slice
// tag conventionally borrows a window of someone else's (typically the
// source text the lexer read), but Str itself does not care.
type Str struct {
	data []byte
	hash uint64
}

// NewOwnedStr copies data into a new, independently-owned Str.
func NewOwnedStr(data []byte) *Str {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Str{data: cp}
}

// NewBorrowedStr wraps data without copying it. The caller must keep the
// backing array alive for as long as the returned Str is reachable;
// since Go's GC tracks slices, this is automatic as long as something
// still references data.
func NewBorrowedStr(data []byte) *Str { return &Str{data: data} }

// Len returns the byte length.
func (s *Str) Len() int { return len(s.data) }

// Bytes returns the raw backing bytes. Callers must not mutate them
// through the returned slice.
func (s *Str) Bytes() []byte { return s.data }

// Hash computes (and caches) the FNV-1a hash of the string's bytes.
func (s *Str) Hash() uint64 {
	if s.hash != 0 {
		return s.hash
	}
	h := fnvOffset
	for _, b := range s.data {
		h ^= uint64(b)
		h *= fnvPrime
	}
	if h == 0 {
		h = hashSentinel
	}
	s.hash = h
	return h
}

// Eq compares two Str values by length and content, short-circuiting on
// cached hashes when both are already computed.
func (a *Str) Eq(b *Str) bool {
	if a == b {
		return true
	}
	if len(a.data) != len(b.data) {
		return false
	}
	if a.hash != 0 && b.hash != 0 && a.hash != b.hash {
		return false
	}
	return bytes.Equal(a.data, b.data)
}

// Print renders the string's contents unquoted.
func (s *Str) Print() string { return string(s.data) }

// Repr renders the string quoted, the way it appears nested inside
// another container's representation.
func (s *Str) Repr() string { return `"` + string(s.data) + `"` }
