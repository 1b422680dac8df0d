package table

import (
	"testing"

	"github.com/slang-lang/slangc/internal/value"
)

func key(n float64) value.Tag { return value.NewDouble(n) }

func TestSetGetRoundTrip(t *testing.T) {
	tbl := New()
	tbl.Set(key(1), value.NewDouble(100))
	tbl.Set(key(2), value.NewDouble(200))

	got, ok := tbl.Get(key(1))
	if !ok || got.AsDouble() != 100 {
		t.Fatalf("Get(1) = %v, %v", got, ok)
	}
	got, ok = tbl.Get(key(2))
	if !ok || got.AsDouble() != 200 {
		t.Fatalf("Get(2) = %v, %v", got, ok)
	}
	if _, ok := tbl.Get(key(3)); ok {
		t.Fatalf("Get(3) should not be found")
	}
}

func TestSetOverwritesExistingKey(t *testing.T) {
	tbl := New()
	tbl.Set(key(1), value.NewDouble(1))
	tbl.Set(key(1), value.NewDouble(2))
	if tbl.RealLen() != 1 {
		t.Fatalf("RealLen = %d, want 1", tbl.RealLen())
	}
	got, _ := tbl.Get(key(1))
	if got.AsDouble() != 2 {
		t.Fatalf("Get(1) = %v, want 2", got)
	}
}

func TestDeleteThenReinsert(t *testing.T) {
	tbl := New()
	tbl.Set(key(1), value.NewDouble(1))
	if !tbl.Delete(key(1)) {
		t.Fatalf("Delete(1) should report true")
	}
	if tbl.Delete(key(1)) {
		t.Fatalf("second Delete(1) should report false")
	}
	if _, ok := tbl.Get(key(1)); ok {
		t.Fatalf("deleted key must not be found")
	}
	tbl.Set(key(1), value.NewDouble(9))
	got, ok := tbl.Get(key(1))
	if !ok || got.AsDouble() != 9 {
		t.Fatalf("reinsert after delete failed: %v, %v", got, ok)
	}
}

func TestGrowsPastLoadFactor(t *testing.T) {
	tbl := New()
	for i := 0; i < 100; i++ {
		tbl.Set(key(float64(i)), value.NewDouble(float64(i)))
	}
	if tbl.RealLen() != 100 {
		t.Fatalf("RealLen = %d, want 100", tbl.RealLen())
	}
	for i := 0; i < 100; i++ {
		got, ok := tbl.Get(key(float64(i)))
		if !ok || got.AsDouble() != float64(i) {
			t.Fatalf("Get(%d) = %v, %v", i, got, ok)
		}
	}
}

func TestDeleteAndGrowReclaimsTombstones(t *testing.T) {
	tbl := New()
	for i := 0; i < 20; i++ {
		tbl.Set(key(float64(i)), value.NewDouble(float64(i)))
	}
	for i := 0; i < 10; i++ {
		tbl.Delete(key(float64(i)))
	}
	for i := 20; i < 60; i++ {
		tbl.Set(key(float64(i)), value.NewDouble(float64(i)))
	}
	for i := 10; i < 60; i++ {
		got, ok := tbl.Get(key(float64(i)))
		if !ok || got.AsDouble() != float64(i) {
			t.Fatalf("Get(%d) = %v, %v after tombstone-reclaiming growth", i, got, ok)
		}
	}
	for i := 0; i < 10; i++ {
		if _, ok := tbl.Get(key(float64(i))); ok {
			t.Fatalf("deleted key %d resurfaced after growth", i)
		}
	}
}

func TestSetRejectsReservedSentinelKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic inserting a reserved sentinel key")
		}
	}()
	tbl := New()
	tbl.Set(tombstoneKey, value.NewDouble(1))
}

func TestTableEq(t *testing.T) {
	a, b := New(), New()
	a.Set(key(1), value.NewDouble(10))
	a.Set(key(2), value.NewDouble(20))
	b.Set(key(2), value.NewDouble(20))
	b.Set(key(1), value.NewDouble(10))
	if !a.Eq(b) {
		t.Fatalf("tables with the same entries in different order must compare equal")
	}
	b.Set(key(3), value.NewDouble(30))
	if a.Eq(b) {
		t.Fatalf("tables with differing entries must not compare equal")
	}
}

func TestTableAsTagTruthiness(t *testing.T) {
	tbl := New()
	tag := tbl.AsTag(true)
	if tag.IsTrue() {
		t.Fatalf("empty table should be falsey")
	}
	tbl.Set(key(1), value.NewDouble(1))
	if !tag.IsTrue() {
		t.Fatalf("non-empty table should be truthy")
	}
}

func TestTableTagEqIsStructural(t *testing.T) {
	a, b := New(), New()
	a.Set(key(1), value.NewDouble(1))
	b.Set(key(1), value.NewDouble(1))
	tagA := a.AsTag(true)
	tagB := b.AsTag(true)
	if !tagA.Eq(tagB) {
		t.Fatalf("two structurally equal tables must be equal tags because table_eq compares entries")
	}
	if !tagA.Eq(tagA) {
		t.Fatalf("a table tag must equal itself")
	}
}

func TestKeyEqListIsByIdentityNotStructure(t *testing.T) {
	var l1, l2 value.List
	l1.Append(value.NewDouble(1))
	l2.Append(value.NewDouble(1))
	k1 := value.NewListTag(&l1, true)
	k2 := value.NewListTag(&l2, true)
	if keyEq(k1, k2) {
		t.Fatalf("list keys must compare by identity, not structure")
	}
	if !keyEq(k1, k1) {
		t.Fatalf("a list key must equal itself")
	}
}

func TestRepr(t *testing.T) {
	tbl := New()
	tbl.Set(value.NewString(value.NewOwnedStr([]byte("a")), true), value.NewDouble(1))
	if got, want := tbl.Repr(), `{"a": 1}`; got != want {
		t.Fatalf("Repr = %q, want %q", got, want)
	}
}
