package value

import "testing"

func TestDoubleRoundTrip(t *testing.T) {
	d := NewDouble(3.5)
	if !d.IsDouble() {
		t.Fatalf("expected IsDouble")
	}
	if got := d.AsDouble(); got != 3.5 {
		t.Fatalf("AsDouble = %v, want 3.5", got)
	}
	if d.IsPointer() {
		t.Fatalf("double tag should not be a pointer")
	}
}

func TestZeroTagIsDoubleZero(t *testing.T) {
	var z Tag
	if !z.IsDouble() || z.AsDouble() != 0 {
		t.Fatalf("zero Tag should be double 0.0")
	}
}

func TestPointerOwnershipAndRef(t *testing.T) {
	s := NewOwnedStr([]byte("hi"))
	owned := NewString(s, true)
	if !owned.IsOwned() || owned.IsRef() {
		t.Fatalf("expected owned string tag")
	}
	ref := owned.ToRef()
	if !ref.IsRef() || ref.IsOwned() {
		t.Fatalf("expected ref string tag after ToRef")
	}
	if ref.AsString() != owned.AsString() {
		t.Fatalf("ToRef must alias the same backing Str")
	}
}

func TestNewPointerTagRejectsNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on nil pointer tag")
		}
	}()
	NewString(nil, true)
}

func TestPairRoundTripUnsigned(t *testing.T) {
	p := NewUPair(0xBEEF, 0xCAFEBABE)
	a, b := p.PairU()
	if a != 0xBEEF || b != 0xCAFEBABE {
		t.Fatalf("PairU = (%x, %x)", a, b)
	}
	if !p.IsPair() {
		t.Fatalf("expected IsPair")
	}
}

func TestPairRoundTripSigned(t *testing.T) {
	p := NewPair(-1, -2)
	a, b := p.Pair()
	if a != -1 || b != -2 {
		t.Fatalf("Pair = (%d, %d)", a, b)
	}
}

func TestReservedSymbolTruthiness(t *testing.T) {
	cases := []struct {
		tag  Tag
		want bool
	}{
		{False, false},
		{True, true},
		{Nil, false},
		{Ok, true},
		{UserSymbol(0), true},
	}
	for _, c := range cases {
		if got := c.tag.IsTrue(); got != c.want {
			t.Fatalf("IsTrue(%v) = %v, want %v", c.tag, got, c.want)
		}
	}
}

func TestEqInt64DoublePairCrossType(t *testing.T) {
	i := int64(7)
	iTag := NewInt64(&i, false)
	dTag := NewDouble(7.0)
	pTag := NewPair(0, 7)

	if !iTag.Eq(dTag) || !dTag.Eq(iTag) {
		t.Fatalf("int64(7) should equal double(7.0)")
	}
	if !iTag.Eq(pTag) || !pTag.Eq(iTag) {
		t.Fatalf("int64(7) should equal pair(0, 7)")
	}
	if !dTag.Eq(pTag) || !pTag.Eq(dTag) {
		t.Fatalf("double(7.0) should equal pair(0, 7)")
	}

	nonZeroA := NewPair(1, 7)
	if iTag.Eq(nonZeroA) {
		t.Fatalf("pair with nonzero a must not equal an int64")
	}
}

func TestEqStringSliceCrossType(t *testing.T) {
	owned := NewOwnedStr([]byte("abc"))
	borrowed := NewBorrowedStr([]byte("abc"))
	sTag := NewString(owned, true)
	slTag := NewSlice(borrowed, true)
	if !sTag.Eq(slTag) || !slTag.Eq(sTag) {
		t.Fatalf("string and slice with equal contents must compare equal")
	}
}

func TestEqDoubleNaNIsNotEqualToItself(t *testing.T) {
	nan := NewDouble(nan())
	if nan.Eq(nan) {
		t.Fatalf("NaN must not equal itself")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestHashAgreesWithEqForCrossTypeNumbers(t *testing.T) {
	i := int64(42)
	iTag := NewInt64(&i, false)
	dTag := NewDouble(42.0)
	if !iTag.Eq(dTag) {
		t.Fatalf("precondition failed: expected equal")
	}
	if iTag.Hash() != dTag.Hash() {
		t.Fatalf("Eq values must hash equal: %d != %d", iTag.Hash(), dTag.Hash())
	}
}

func TestFreeOfRefTagIsNoop(t *testing.T) {
	s := NewOwnedStr([]byte("x"))
	ref := NewString(s, false).ToRef()
	ref.Free() // must not panic, must not touch s
	if s.Print() != "x" {
		t.Fatalf("Free of a ref tag mutated the backing Str")
	}
}

func TestFreeRecursesThroughError(t *testing.T) {
	inner := NewInt64(new(int64), true)
	errTag := NewError(&inner, true)
	errTag.Free() // must not panic
}

func TestReprString(t *testing.T) {
	s := NewOwnedStr([]byte("ok"))
	tag := NewString(s, true)
	if got := tag.Repr(); got != `"ok"` {
		t.Fatalf("Repr = %q, want %q", got, `"ok"`)
	}
	if got := tag.Print(); got != "ok" {
		t.Fatalf("Print = %q, want %q", got, "ok")
	}
}

func FuzzIntDoubleEquivalence(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(-1))
	f.Add(int64(1 << 40))
	f.Fuzz(func(t *testing.T, n int64) {
		// Values outside float64's exact integer range are allowed to
		// diverge; restrict to the range a double can represent exactly.
		if n > 1<<53 || n < -(1<<53) {
			t.Skip()
		}
		iTag := NewInt64(&n, false)
		dTag := NewDouble(float64(n))
		if !iTag.Eq(dTag) {
			t.Fatalf("int64(%d) should equal double(%d)", n, n)
		}
		if iTag.Hash() != dTag.Hash() {
			t.Fatalf("int64(%d) and double(%d) must hash equal", n, n)
		}
	})
}
