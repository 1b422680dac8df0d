package value

import "testing"

func TestStrEqByContent(t *testing.T) {
	a := NewOwnedStr([]byte("hello"))
	b := NewBorrowedStr([]byte("hello"))
	if !a.Eq(b) {
		t.Fatalf("equal-content strings must compare equal")
	}
	c := NewOwnedStr([]byte("hellp"))
	if a.Eq(c) {
		t.Fatalf("differing strings must not compare equal")
	}
}

func TestStrHashStableAndSentineled(t *testing.T) {
	s := NewOwnedStr(nil)
	h1 := s.Hash()
	h2 := s.Hash()
	if h1 != h2 {
		t.Fatalf("hash must be stable across calls: %d != %d", h1, h2)
	}
	if h1 == 0 {
		t.Fatalf("hash must never be the zero sentinel, got 0")
	}
}

func TestStrReprQuotesPrintDoesNot(t *testing.T) {
	s := NewOwnedStr([]byte("abc"))
	if got := s.Print(); got != "abc" {
		t.Fatalf("Print = %q", got)
	}
	if got := s.Repr(); got != `"abc"` {
		t.Fatalf("Repr = %q", got)
	}
}

func TestOwnedStrCopiesBackingArray(t *testing.T) {
	buf := []byte("mutable")
	s := NewOwnedStr(buf)
	buf[0] = 'X'
	if s.Print() != "mutable" {
		t.Fatalf("owned Str must not alias caller's backing array")
	}
}

func TestBorrowedStrAliasesBackingArray(t *testing.T) {
	buf := []byte("shared")
	s := NewBorrowedStr(buf)
	buf[0] = 'S'
	if s.Print() != "Shared" {
		t.Fatalf("borrowed Str should observe mutation through the alias, got %q", s.Print())
	}
}
