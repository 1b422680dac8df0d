// Package varray implements the generic growable buffer every other data
// structure in slangc is built on: lists, the constant pool, the bytecode
// stream, and the hash table's entry slots.
//
// Capacity always grows to a power of two, geometrically, with a floor of
// minCapacity. Len is the high-water mark of initialized elements; Cap may
// exceed Len between a Grow and the writes that follow it.
package varray

// minCapacity is the smallest capacity Reserve ever allocates.
const minCapacity = 8

// Array is a growable buffer of T, grown in power-of-two steps.
//
// The zero value is an empty, zero-capacity array ready to use.
type Array[T any] struct {
	items []T
	len   int
}

// Len reports the number of initialized elements.
func (a *Array[T]) Len() int { return a.len }

// Cap reports the current backing capacity.
func (a *Array[T]) Cap() int { return len(a.items) }

func nextPow2(n int) int {
	if n <= 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return n
	}
	pow := 1
	for pow < n {
		pow <<= 1
	}
	return pow
}

// Reserve ensures Cap() >= cap, growing geometrically if needed, and
// returns the resulting capacity (0 on failure, per the allocation-failure
// contract the rest of the package follows).
func (a *Array[T]) Reserve(cap int) int {
	if a.Cap() >= cap {
		return a.Cap()
	}
	if cap < minCapacity {
		cap = minCapacity
	} else {
		cap = nextPow2(cap)
	}
	if cap <= 0 {
		return 0
	}
	grown := make([]T, cap)
	copy(grown, a.items)
	a.items = grown
	return cap
}

// Grow doubles the capacity (or reserves minCapacity from empty) and
// returns the new capacity, 0 on failure.
func (a *Array[T]) Grow() int {
	if a.Cap() == 0 {
		return a.Reserve(minCapacity)
	}
	return a.Reserve(2 * a.Cap())
}

// Get returns the element at idx. idx must be < Cap(); callers that only
// ever index within [0, Len()) get the usual slice-index panic on misuse.
func (a *Array[T]) Get(idx int) T { return a.items[idx] }

// Set writes the element at idx. idx must be < Cap().
func (a *Array[T]) Set(idx int, v T) { a.items[idx] = v }

// Truncate sets Len to n without touching the backing storage. n must be
// <= Cap().
func (a *Array[T]) Truncate(n int) { a.len = n }

// Append writes v at the current Len, growing first if the array is full,
// and returns the new Len (0 if growth failed).
func (a *Array[T]) Append(v T) int {
	if a.Cap() == a.len {
		if a.Grow() == 0 {
			return 0
		}
	}
	a.items[a.len] = v
	a.len++
	return a.len
}

// Seal shrinks the backing capacity down to Len, freezing the array at
// its current size. Used once a Chunk or constant pool is finalized.
func (a *Array[T]) Seal() {
	sealed := make([]T, a.len)
	copy(sealed, a.items[:a.len])
	a.items = sealed
}

// Free releases the backing storage and resets the array to its zero
// value. There is nothing for the Go garbage collector to be told here
// beyond dropping the reference, but the call exists because every
// container built on Array exposes its own Free with the matching
// recursive-release semantics the language's value model requires.
func (a *Array[T]) Free() {
	a.items = nil
	a.len = 0
}
