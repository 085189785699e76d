// Package arena provides a generational arena: a slot-based container with
// constant-time insert and remove operations.
//
// Inserting a value returns an Index that stays valid until that exact value
// is removed. Slots are recycled through an internal free list, and every
// removal bumps the slot's generation, so a stale Index held after removal
// can never observe a value inserted later into the same slot.
//
// The arena is not safe for concurrent structural mutation. Concurrent reads
// of distinct, already-inserted values are safe; Insert, Remove, Clear and
// Reserve must be externally synchronized.
package arena

import "fmt"

// noFree marks the end of the free list.
const noFree = ^uint32(0)

// Index identifies a value in a specific Arena.
//
// It is a plain value type: copying it is cheap and grants no ownership.
// An Index is valid only against the arena that issued it, and only until
// the value it names is removed. The zero Index is never valid.
type Index struct {
	offset     uint32
	generation uint32
}

// Offset returns the slot position of this Index in the arena's storage.
func (i Index) Offset() uint32 {
	return i.offset
}

// Generation returns the generation of this Index. The generation is
// incremented every time the slot at Offset is freed.
func (i Index) Generation() uint32 {
	return i.generation
}

// Compare orders indices by offset, then by generation. It returns -1 if i
// sorts before other, +1 if it sorts after, and 0 if both are equal.
func (i Index) Compare(other Index) int {
	switch {
	case i.offset < other.offset:
		return -1
	case i.offset > other.offset:
		return 1
	case i.generation < other.generation:
		return -1
	case i.generation > other.generation:
		return 1
	default:
		return 0
	}
}

// String formats the index as "<offset>v<generation>", e.g. "3v1".
func (i Index) String() string {
	return fmt.Sprintf("%dv%d", i.offset, i.generation)
}

// entry is a single slot. A slot is either occupied and holds a value, or
// free and part of the free list via nextFree.
type entry[T any] struct {
	generation uint32
	occupied   bool
	nextFree   uint32
	value      T
}

// Arena is a collection with constant-time insert and remove operations.
//
// The zero value is an empty arena ready for use.
type Arena[T any] struct {
	entries  []entry[T]
	nextFree uint32
	count    uint32
}

// New constructs a new, empty Arena. No storage is allocated until the
// first insert.
func New[T any]() *Arena[T] {
	return &Arena[T]{nextFree: noFree}
}

// WithCapacity constructs a new, empty Arena that can hold at least
// capacity elements without reallocating.
func WithCapacity[T any](capacity int) *Arena[T] {
	a := New[T]()
	a.Reserve(capacity)
	return a
}

// Len returns the number of elements currently in the arena.
func (a *Arena[T]) Len() int {
	return int(a.count)
}

// IsEmpty reports whether the arena contains no elements.
func (a *Arena[T]) IsEmpty() bool {
	return a.count == 0
}

// Cap returns the number of slots the arena has allocated. Slot count only
// grows when an insert finds the free list empty.
func (a *Arena[T]) Cap() int {
	return len(a.entries)
}

// Reserve grows the backing storage so that at least additional more
// elements can be inserted without reallocating. It does nothing if the
// free slots and spare capacity already cover the request.
func (a *Arena[T]) Reserve(additional int) {
	buffered := len(a.entries) - int(a.count) + cap(a.entries) - len(a.entries)
	if additional <= buffered {
		return
	}
	grown := make([]entry[T], len(a.entries), cap(a.entries)+additional-buffered)
	copy(grown, a.entries)
	a.entries = grown
}

// Insert adds value to the arena, allocating a new slot only when the free
// list is empty. It returns the Index that uniquely identifies this
// insertion until removal.
func (a *Arena[T]) Insert(value T) Index {
	if idx, ok := a.TryInsert(value); ok {
		return idx
	}
	a.entries = append(a.entries, entry[T]{generation: 1, occupied: true, value: value})
	a.count++
	return Index{offset: uint32(len(a.entries) - 1), generation: 1}
}

// TryInsert adds value to the arena only if a free slot is available. It
// reports false, leaving the arena untouched, when every slot is occupied.
func (a *Arena[T]) TryInsert(value T) (Index, bool) {
	if a.nextFree == noFree {
		return Index{}, false
	}
	e := &a.entries[a.nextFree]
	idx := Index{offset: a.nextFree, generation: e.generation}
	a.nextFree = e.nextFree
	e.occupied = true
	e.value = value
	a.count++
	return idx, true
}

// InsertWith adds the value returned by create to the arena. The create
// function receives the Index of the slot the value will occupy, which
// allows the value to record its own index.
func (a *Arena[T]) InsertWith(create func(Index) T) Index {
	if a.nextFree != noFree {
		e := &a.entries[a.nextFree]
		idx := Index{offset: a.nextFree, generation: e.generation}
		a.nextFree = e.nextFree
		e.occupied = true
		e.value = create(idx)
		a.count++
		return idx
	}
	idx := Index{offset: uint32(len(a.entries)), generation: 1}
	a.entries = append(a.entries, entry[T]{generation: 1, occupied: true, value: create(idx)})
	a.count++
	return idx
}

// Get returns a pointer to the element at the given index, or false if the
// slot is free or the generation does not match. The pointer stays valid
// until the next structural mutation of the arena.
func (a *Arena[T]) Get(index Index) (*T, bool) {
	if int(index.offset) >= len(a.entries) {
		return nil, false
	}
	e := &a.entries[index.offset]
	if !e.occupied || e.generation != index.generation {
		return nil, false
	}
	return &e.value, true
}

// At returns a pointer to the element at the given index. In contrast to
// Get, which reports absence, At panics if the index is invalid.
func (a *Arena[T]) At(index Index) *T {
	v, ok := a.Get(index)
	if !ok {
		panic(fmt.Sprintf("arena: invalid index %s", index))
	}
	return v
}

// Contains reports whether there is an element for the given index.
func (a *Arena[T]) Contains(index Index) bool {
	_, ok := a.Get(index)
	return ok
}

// Remove removes the element at the given index and returns it. It reports
// false, returning the zero value, if the index is stale or unknown.
//
// Removing bumps the slot's generation, so the removed Index (and any copy
// of it) reports absence from then on, even after the slot is reused.
func (a *Arena[T]) Remove(index Index) (T, bool) {
	var zero T
	if int(index.offset) >= len(a.entries) {
		return zero, false
	}
	e := &a.entries[index.offset]
	if !e.occupied || e.generation != index.generation {
		return zero, false
	}
	value := e.value
	e.value = zero
	e.occupied = false
	e.generation++
	e.nextFree = a.nextFree
	a.nextFree = index.offset
	a.count--
	return value, true
}

// Clear removes all values from the arena. Slot capacity and generations
// are retained, so indices issued before the call keep reporting absence.
func (a *Arena[T]) Clear() {
	for i := range a.entries {
		if a.entries[i].occupied {
			a.release(uint32(i))
		}
	}
	a.count = 0
}

// release frees the occupied slot at offset and pushes it onto the free
// list.
func (a *Arena[T]) release(offset uint32) {
	var zero T
	e := &a.entries[offset]
	e.value = zero
	e.occupied = false
	e.generation++
	e.nextFree = a.nextFree
	a.nextFree = offset
}
