package arena

import "iter"

// All returns an iterator over (Index, *T) pairs for every occupied slot,
// in slot order. The sequence is lazy, finite and restartable.
//
// The arena must not be structurally mutated (Insert, Remove, Clear) while
// iterating.
func (a *Arena[T]) All() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for i := range a.entries {
			e := &a.entries[i]
			if !e.occupied {
				continue
			}
			if !yield(Index{offset: uint32(i), generation: e.generation}, &e.value) {
				return
			}
		}
	}
}

// Drain returns an iterator that removes every element from the arena and
// yields the removed (Index, T) pairs in slot order. Elements not reached
// by the caller are still removed when the iterator finishes or is
// abandoned early.
func (a *Arena[T]) Drain() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		defer a.Clear()
		for i := range a.entries {
			e := &a.entries[i]
			if !e.occupied {
				continue
			}
			idx := Index{offset: uint32(i), generation: e.generation}
			value := e.value
			a.release(uint32(i))
			a.count--
			if !yield(idx, value) {
				return
			}
		}
	}
}
