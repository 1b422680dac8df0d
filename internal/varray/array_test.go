package varray

import "testing"

func TestAppendGrowsToPowerOfTwo(t *testing.T) {
	var a Array[int]
	for i := 0; i < 9; i++ {
		a.Append(i)
	}
	if a.Len() != 9 {
		t.Fatalf("len=9 got %d", a.Len())
	}
	if a.Cap() != 16 {
		t.Fatalf("cap=16 got %d", a.Cap())
	}
}

func TestReserveFloorsAtMinCapacity(t *testing.T) {
	var a Array[byte]
	if got := a.Reserve(1); got != minCapacity {
		t.Fatalf("reserve(1)=%d want %d", got, minCapacity)
	}
}

func TestReserveIsNoopWhenAlreadyBigEnough(t *testing.T) {
	var a Array[byte]
	a.Reserve(32)
	if got := a.Reserve(10); got != 32 {
		t.Fatalf("reserve shrank capacity: got %d", got)
	}
}

func TestTruncateThenAppendOverwrites(t *testing.T) {
	var a Array[int]
	a.Append(1)
	a.Append(2)
	a.Append(3)
	a.Truncate(1)
	a.Append(99)
	if a.Len() != 2 {
		t.Fatalf("len=2 got %d", a.Len())
	}
	if got := a.Get(1); got != 99 {
		t.Fatalf("get(1)=99 got %d", got)
	}
}

func TestSealShrinksCapToLen(t *testing.T) {
	var a Array[int]
	for i := 0; i < 5; i++ {
		a.Append(i)
	}
	a.Seal()
	if a.Cap() != 5 {
		t.Fatalf("cap=5 got %d", a.Cap())
	}
	if a.Len() != 5 {
		t.Fatalf("len=5 got %d", a.Len())
	}
}

func TestFreeResetsToZeroValue(t *testing.T) {
	var a Array[int]
	a.Append(1)
	a.Free()
	if a.Len() != 0 || a.Cap() != 0 {
		t.Fatalf("free did not reset array: len=%d cap=%d", a.Len(), a.Cap())
	}
}
