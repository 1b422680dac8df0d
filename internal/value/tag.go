// Package value implements Tag, the 64-bit NaN-boxed discriminated union
// that represents every runtime value in the language, along with the two
// containers (Str and List) a Tag can point to directly.
//
// Tag keeps the bit layout from the reference implementation: a double is
// any float64 bit pattern that does not fall in the reserved NaN region;
// tagged (non-double) values carry their type discriminant in the top 16
// bits and, for pointers, an ownership flag in the low bit. Go cannot
// safely embed a live heap address inside those bits the way the C source
// does, because the garbage collector would never see it — so the pointer
// payload is kept out-of-band in an unsafe.Pointer field, which the GC
// does scan, while bits continues to carry exactly the discriminant and
// ownership information the specification's tests check for.
//
// Table is defined in a separate package (internal/table) to keep the
// open-addressed implementation's concerns away from the value model, but
// Tag still needs to hold, compare, hash, and free table pointers. That
// would be an import cycle if Tag depended on the table package directly,
// so Table values travel through Tag as an opaque unsafe.Pointer and the
// table package registers the handful of operations (Eq, Hash, Len, Free,
// Print) Tag needs via RegisterTableHooks at init time — the Go analogue
// of the forward-declared vtable surface the C header uses for the same
// cyclic dependency.
package value

import (
	"fmt"
	"math"
	"strconv"
	"unsafe"
)

// Type is the discriminant of a Tag, exposed for callers (the compiler's
// constant deduplication, the table's key-equality rule) that need to
// branch on a value's shape without re-deriving it from the bit pattern.
type Type uint8

const (
	TypeDouble Type = iota
	TypeString
	TypeTable
	TypeList
	TypeInt64
	TypeError
	TypeSlice
	TypePair
	TypeSymbol
)

func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeTable:
		return "table"
	case TypeList:
		return "list"
	case TypeInt64:
		return "i64"
	case TypeError:
		return "error"
	case TypeSlice:
		return "slice"
	case TypePair:
		return "pair"
	case TypeSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Bit layout constants, ported bit-for-bit from the reference
// implementation's tag.h. These are part of the tested wire format (the
// discriminant table in the specification), not an implementation detail.
const (
	taggedMask       uint64 = 0x7FF4_0000_0000_0000
	signFlag         uint64 = 0x8000_0000_0000_0000
	discriminantMask uint64 = 0xFFFF_0000_0000_0000

	stringDisc uint64 = 0x7FF4_0000_0000_0000
	tableDisc  uint64 = 0x7FF5_0000_0000_0000
	listDisc   uint64 = 0x7FF6_0000_0000_0000
	int64Disc  uint64 = 0x7FF7_0000_0000_0000
	errorDisc  uint64 = 0x7FFC_0000_0000_0000
	sliceDisc  uint64 = 0x7FFD_0000_0000_0000
	pairDisc   uint64 = 0xFFF4_0000_0000_0000
	symbolDisc uint64 = 0xFFF5_0000_0000_0000
)

// Reserved symbol codes; user symbols start immediately after.
const (
	SymFalse uint32 = 0
	SymTrue  uint32 = 1
	SymNil   uint32 = 2
	SymOk    uint32 = 3
	symCount uint32 = 4
)

// Tag is the 64-bit tagged value. The zero Tag is a double of value 0.0,
// matching the zero value falling outside the reserved NaN pattern.
type Tag struct {
	bits uint64
	ptr  unsafe.Pointer
}

func isTagged(bits uint64) bool { return bits&taggedMask == taggedMask }

// IsPointer reports whether t is one of the six pointer variants.
func (t Tag) IsPointer() bool { return t.bits&(taggedMask|signFlag) == taggedMask }

// IsOwned reports whether t is a pointer tag responsible for freeing its
// backing object.
func (t Tag) IsOwned() bool { return t.IsPointer() && t.bits&1 == 0 }

// IsRef reports whether t is a pointer tag that must not free its
// backing object.
func (t Tag) IsRef() bool { return t.IsPointer() && t.bits&1 == 1 }

// ToRef returns a copy of t with the ownership flag set to "reference",
// aliasing the same backing object. Calling ToRef on an already-ref tag
// is a no-op, matching the idempotence the specification requires.
func (t Tag) ToRef() Tag {
	if !t.IsPointer() {
		panic("value: ToRef called on a non-pointer tag")
	}
	return Tag{bits: t.bits | 1, ptr: t.ptr}
}

// RawPointer returns the backing pointer for any pointer-variant tag,
// ignoring ownership. Used by containers (internal/table) that need
// reference-identity comparisons rather than structural equality.
func (t Tag) RawPointer() (unsafe.Pointer, bool) {
	if !t.IsPointer() {
		return nil, false
	}
	return t.ptr, true
}

// BitsEqual is the bitwise-equality relation the specification calls
// tag_biteq: true only when both the discriminant/ownership bits and the
// pointer identity match exactly. Two Go Tag values compare biteq with
// plain `==` as well, since both fields are comparable; BitsEqual exists
// to name the operation at call sites that care about the distinction
// from the structural Eq below.
func (t Tag) BitsEqual(o Tag) bool { return t == o }

// Type returns the discriminant of t.
func (t Tag) Type() Type {
	if !isTagged(t.bits) {
		return TypeDouble
	}
	switch t.bits & discriminantMask {
	case stringDisc:
		return TypeString
	case tableDisc:
		return TypeTable
	case listDisc:
		return TypeList
	case int64Disc:
		return TypeInt64
	case errorDisc:
		return TypeError
	case sliceDisc:
		return TypeSlice
	case pairDisc:
		return TypePair
	case symbolDisc:
		return TypeSymbol
	default:
		panic(fmt.Sprintf("value: tagged bits with unknown discriminant %#016x", t.bits))
	}
}

func (t Tag) IsString() bool { return t.bits&discriminantMask == stringDisc }
func (t Tag) IsTable() bool  { return t.bits&discriminantMask == tableDisc }
func (t Tag) IsList() bool   { return t.bits&discriminantMask == listDisc }
func (t Tag) IsInt64() bool  { return t.bits&discriminantMask == int64Disc }
func (t Tag) IsError() bool  { return t.bits&discriminantMask == errorDisc }
func (t Tag) IsSlice() bool  { return t.bits&discriminantMask == sliceDisc }
func (t Tag) IsPair() bool   { return t.bits&discriminantMask == pairDisc }
func (t Tag) IsSymbol() bool { return t.bits&discriminantMask == symbolDisc }
func (t Tag) IsDouble() bool { return !isTagged(t.bits) }

func newPointerTag(disc uint64, p unsafe.Pointer, owned bool) Tag {
	if p == nil {
		panic("value: pointer tags cannot be null")
	}
	bits := disc
	if !owned {
		bits |= 1
	}
	return Tag{bits: bits, ptr: p}
}

// NewString wraps an owned or borrowed Str as a String-discriminant tag.
func NewString(s *Str, owned bool) Tag { return newPointerTag(stringDisc, unsafe.Pointer(s), owned) }

// NewSlice wraps a Str (always borrowed storage, but the Tag's ownership
// flag is independent of that) as a Slice-discriminant tag.
func NewSlice(s *Str, owned bool) Tag { return newPointerTag(sliceDisc, unsafe.Pointer(s), owned) }

// NewListTag wraps a *List as a List-discriminant tag.
func NewListTag(l *List, owned bool) Tag { return newPointerTag(listDisc, unsafe.Pointer(l), owned) }

// NewInt64 boxes an int64 as an Int64-discriminant tag.
func NewInt64(i *int64, owned bool) Tag { return newPointerTag(int64Disc, unsafe.Pointer(i), owned) }

// NewError boxes another Tag as an Error-discriminant tag.
func NewError(inner *Tag, owned bool) Tag {
	return newPointerTag(errorDisc, unsafe.Pointer(inner), owned)
}

// NewTablePtr wraps an opaque table pointer (owned by internal/table) as
// a Table-discriminant tag. internal/table is the only expected caller.
func NewTablePtr(p unsafe.Pointer, owned bool) Tag { return newPointerTag(tableDisc, p, owned) }

func (t Tag) mustBe(ok bool, name string) {
	if !ok {
		panic("value: " + name + " called on a tag of type " + t.Type().String())
	}
}

func (t Tag) AsString() *Str { t.mustBe(t.IsString(), "AsString"); return (*Str)(t.ptr) }
func (t Tag) AsSlice() *Str  { t.mustBe(t.IsSlice(), "AsSlice"); return (*Str)(t.ptr) }
func (t Tag) AsList() *List  { t.mustBe(t.IsList(), "AsList"); return (*List)(t.ptr) }
func (t Tag) AsInt64() *int64 {
	t.mustBe(t.IsInt64(), "AsInt64")
	return (*int64)(t.ptr)
}
func (t Tag) AsError() *Tag { t.mustBe(t.IsError(), "AsError"); return (*Tag)(t.ptr) }

// TablePtr returns the opaque pointer for a Table-discriminant tag, for
// internal/table to cast back to *table.Table.
func (t Tag) TablePtr() unsafe.Pointer { t.mustBe(t.IsTable(), "TablePtr"); return t.ptr }

// NewUPair builds a Pair tag from an unsigned 16/32-bit pair.
func NewUPair(a uint16, b uint32) Tag {
	return Tag{bits: pairDisc | (uint64(a) << 32) | uint64(b)}
}

// NewPair builds a Pair tag from a signed 16/32-bit pair, two's-complement
// encoded into the same bits an unsigned pair would use.
func NewPair(a int16, b int32) Tag { return NewUPair(uint16(a), uint32(b)) }

// PairU returns the raw unsigned fields of a Pair tag.
func (t Tag) PairU() (uint16, uint32) {
	t.mustBe(t.IsPair(), "PairU")
	a := uint16((t.bits & 0x0000_FFFF_0000_0000) >> 32)
	b := uint32(t.bits & 0x0000_0000_FFFF_FFFF)
	return a, b
}

// Pair returns the signed, two's-complement interpretation of a Pair
// tag's fields.
func (t Tag) Pair() (int16, int32) {
	a, b := t.PairU()
	return int16(a), int32(b)
}

// NewSymbol builds a Symbol tag from a raw code (the four reserved codes
// plus any user code >= symCount).
func NewSymbol(code uint32) Tag { return Tag{bits: symbolDisc | uint64(code)} }

// UserSymbol builds a Symbol tag for user code x, offset past the four
// reserved codes.
func UserSymbol(x uint32) Tag { return NewSymbol(x + symCount) }

// Symbol returns the raw code of a Symbol tag.
func (t Tag) Symbol() uint32 {
	t.mustBe(t.IsSymbol(), "Symbol")
	return uint32(t.bits &^ discriminantMask)
}

var (
	False = NewSymbol(SymFalse)
	True  = NewSymbol(SymTrue)
	Nil   = NewSymbol(SymNil)
	Ok    = NewSymbol(SymOk)
)

// NewDouble wraps a float64. Any bit pattern that happens to land in the
// reserved NaN region is indistinguishable from a tagged value — the
// same caveat the reference NaN-boxing implementation carries, since
// ordinary floating point arithmetic is not expected to produce it.
func NewDouble(d float64) Tag { return Tag{bits: math.Float64bits(d)} }

// AsDouble returns the float64 value of a double tag.
func (t Tag) AsDouble() float64 {
	t.mustBe(t.IsDouble(), "AsDouble")
	return math.Float64frombits(t.bits)
}

func intHash(x uint64) uint64 { return x*13 + 37 }

// Eq is the total equality relation the specification calls tag_eq:
// reflexive except across double NaNs, and aware of the cross-type
// comparisons (Int64/Double/Pair(0,_), String/Slice) the language treats
// as equal.
func (a Tag) Eq(b Tag) bool {
	if a.IsDouble() && b.IsDouble() {
		return a.AsDouble() == b.AsDouble()
	}
	if a.BitsEqual(b) {
		return true
	}
	if ap, aok := a.RawPointer(); aok {
		if bp, bok := b.RawPointer(); bok && ap == bp {
			return true
		}
	}
	switch a.Type() {
	case TypeString:
		switch {
		case b.IsString():
			return a.AsString().Eq(b.AsString())
		case b.IsSlice():
			return a.AsString().Eq(b.AsSlice())
		}
		return false
	case TypeSlice:
		switch {
		case b.IsSlice():
			return a.AsSlice().Eq(b.AsSlice())
		case b.IsString():
			return b.AsString().Eq(a.AsSlice())
		}
		return false
	case TypeTable:
		return b.IsTable() && tableHooks.Eq(a.ptr, b.ptr)
	case TypeList:
		return b.IsList() && a.AsList().Eq(b.AsList())
	case TypeInt64:
		v := *a.AsInt64()
		switch {
		case b.IsPair():
			ua, ub := b.PairU()
			return ua == 0 && v == int64(int32(ub))
		case b.IsInt64():
			return v == *b.AsInt64()
		case b.IsDouble():
			return float64(v) == b.AsDouble()
		}
		return false
	case TypeError:
		return b.IsError() && a.AsError().Eq(*b.AsError())
	case TypeDouble:
		d := a.AsDouble()
		switch {
		case b.IsDouble():
			return d == b.AsDouble()
		case b.IsPair():
			ua, ub := b.PairU()
			return ua == 0 && d == float64(int32(ub))
		case b.IsInt64():
			return d == float64(*b.AsInt64())
		}
		return false
	case TypePair:
		ua, ub := a.PairU()
		if b.IsPair() || ua != 0 {
			return false
		}
		switch {
		case b.IsInt64():
			return int64(int32(ub)) == *b.AsInt64()
		case b.IsDouble():
			return float64(int32(ub)) == b.AsDouble()
		}
		return false
	case TypeSymbol:
		return false
	default:
		return false
	}
}

// Hash is tag_hash: a per-type constant combined with the value's
// natural hash, chosen so that Eq(a, b) implies Hash(a) == Hash(b).
// Table and List tags are the exception: they hash by address while Eq
// compares them structurally, so two distinct but equal containers hash
// differently (internal/table compares container keys by identity).
func (t Tag) Hash() uint64 {
	switch t.Type() {
	case TypeString:
		return 0xFEEDFEED ^ t.AsString().Hash()
	case TypeSlice:
		return 0xFEEDFEED ^ t.AsSlice().Hash()
	case TypeTable:
		return 0xDEADBEEF ^ tableHooks.Hash(t.ptr)
	case TypeList:
		return 0xDEADBEEF ^ (uint64(uintptr(t.ptr)) >> 4)
	case TypeInt64:
		return intHash(uint64(*t.AsInt64()))
	case TypeError:
		return 0xC0FFEE ^ t.AsError().Hash()
	case TypeDouble:
		d := t.AsDouble()
		if d == float64(int64(d)) {
			return intHash(uint64(int64(d)))
		}
		return math.Float64bits(d)
	case TypePair:
		ua, ub := t.PairU()
		if ua == 0 {
			// Eq reads b as signed when comparing against Int64/Double.
			return intHash(uint64(int64(int32(ub))))
		}
		return intHash((uint64(ua) << 32) | uint64(ub))
	case TypeSymbol:
		return 0xCACA0 ^ (uint64(t.Symbol())*31 + 37)
	default:
		panic("value: hash of unknown tag type")
	}
}

// IsTrue is the language's truthiness predicate.
func (t Tag) IsTrue() bool {
	switch t.Type() {
	case TypeString:
		return t.AsString().Len() > 0
	case TypeSlice:
		return t.AsSlice().Len() > 0
	case TypeTable:
		return tableHooks.Len(t.ptr) > 0
	case TypeList:
		return t.AsList().Len() > 0
	case TypeInt64:
		return *t.AsInt64() != 0
	case TypeError:
		return false
	case TypeDouble:
		return t.AsDouble() != 0
	case TypePair:
		a, b := t.PairU()
		return a != 0 || b != 0
	case TypeSymbol:
		switch t.Symbol() {
		case SymTrue, SymOk:
			return true
		case SymFalse, SymNil:
			return false
		default:
			return true // user symbols are always truthy
		}
	default:
		return false
	}
}

func render(t Tag, repr bool) string {
	switch t.Type() {
	case TypeString:
		if repr {
			return t.AsString().Repr()
		}
		return t.AsString().Print()
	case TypeSlice:
		if repr {
			return t.AsSlice().Repr()
		}
		return t.AsSlice().Print()
	case TypeTable:
		return tableHooks.Print(t.ptr)
	case TypeList:
		return t.AsList().Repr()
	case TypeInt64:
		return strconv.FormatInt(*t.AsInt64(), 10)
	case TypeError:
		return "error: " + render(*t.AsError(), true)
	case TypePair:
		a, b := t.Pair()
		return fmt.Sprintf("(%d, %d)", a, b)
	case TypeDouble:
		return strconv.FormatFloat(t.AsDouble(), 'f', -1, 64)
	case TypeSymbol:
		switch t.Symbol() {
		case SymFalse:
			return "<false>"
		case SymTrue:
			return "<true>"
		case SymNil:
			return "<nil>"
		case SymOk:
			return "<ok>"
		default:
			return fmt.Sprintf("<symbol: %d>", t.Symbol())
		}
	default:
		return "<unknown>"
	}
}

// Print renders t the way the language's `print` statement does: string
// contents unquoted.
func (t Tag) Print() string { return render(t, false) }

// Repr renders t quoted and typed, the way nested containers render
// their elements.
func (t Tag) Repr() string { return render(t, true) }

// Free releases t's backing object if, and only if, t owns it. Go's
// garbage collector reclaims the memory regardless; Free exists to walk
// the ownership graph the way the reference semantics require (in
// particular, recursively unwrapping an owned Error), and is what
// Table.Free and List.Free call on every entry they own.
func (t Tag) Free() {
	if !t.IsOwned() {
		return
	}
	switch t.Type() {
	case TypeList:
		t.AsList().Free()
	case TypeError:
		t.AsError().Free()
	case TypeTable:
		tableHooks.Free(t.ptr)
	case TypeString, TypeSlice, TypeInt64:
		// No nested owned Tags; the Go GC reclaims the backing storage.
	}
}

// ContainerHooks lets a package that cannot be imported here (because it
// itself imports value) plug in the handful of Table operations Tag
// needs. internal/table registers these from an init function.
type ContainerHooks struct {
	Eq    func(a, b unsafe.Pointer) bool
	Hash  func(p unsafe.Pointer) uint64
	Len   func(p unsafe.Pointer) int
	Free  func(p unsafe.Pointer)
	Print func(p unsafe.Pointer) string
}

var tableHooks ContainerHooks

// RegisterTableHooks installs the Table operations Tag dispatches to.
// Called exactly once, from internal/table's init.
func RegisterTableHooks(h ContainerHooks) { tableHooks = h }
