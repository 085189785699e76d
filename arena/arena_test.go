package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGetRemove(t *testing.T) {
	a := New[string]()
	require.True(t, a.IsEmpty())

	ia := a.Insert("foo")
	ib := a.Insert("bar")
	assert.Equal(t, 2, a.Len())

	assert.Equal(t, "bar", *a.At(ib))
	v, ok := a.Get(ia)
	require.True(t, ok)
	assert.Equal(t, "foo", *v)

	removed, ok := a.Remove(ia)
	require.True(t, ok)
	assert.Equal(t, "foo", removed)
	assert.False(t, a.Contains(ia))
	assert.Equal(t, 1, a.Len())

	// the freed slot is reused, but under a new generation: the old index
	// must keep reporting absence
	ic := a.Insert("baz")
	assert.Equal(t, ia.Offset(), ic.Offset())
	assert.NotEqual(t, ia.Generation(), ic.Generation())

	_, ok = a.Get(ia)
	assert.False(t, ok)
	v, ok = a.Get(ic)
	require.True(t, ok)
	assert.Equal(t, "baz", *v)
}

func TestRemoveInvalid(t *testing.T) {
	a := New[int]()
	idx := a.Insert(1)

	_, ok := a.Remove(Index{offset: 42, generation: 1})
	assert.False(t, ok)

	_, ok = a.Remove(idx)
	require.True(t, ok)
	_, ok = a.Remove(idx)
	assert.False(t, ok, "double remove must be a no-op")

	// zero Index never validates
	assert.False(t, a.Contains(Index{}))
}

func TestSlotReuseNoGrowth(t *testing.T) {
	const n = 8
	a := New[int]()

	indices := make([]Index, 0, n)
	for i := 0; i < n; i++ {
		indices = append(indices, a.Insert(i))
	}
	require.Equal(t, n, a.Cap())

	for _, idx := range indices {
		_, ok := a.Remove(idx)
		require.True(t, ok)
	}
	for i := 0; i < n; i++ {
		a.Insert(i)
	}
	assert.Equal(t, n, a.Cap(), "re-inserting the same count must reuse slots")
	assert.Equal(t, n, a.Len())
}

func TestAtPanicsOnInvalidIndex(t *testing.T) {
	a := New[string]()
	idx := a.Insert("foo")
	a.Remove(idx)

	assert.Panics(t, func() { a.At(idx) })
}

func TestTryInsert(t *testing.T) {
	a := New[string]()

	_, ok := a.TryInsert("foo")
	assert.False(t, ok, "empty arena has no free slot")

	idx := a.Insert("foo")
	a.Remove(idx)

	reused, ok := a.TryInsert("bar")
	require.True(t, ok)
	assert.Equal(t, idx.Offset(), reused.Offset())
	assert.Equal(t, "bar", *a.At(reused))
}

func TestInsertWith(t *testing.T) {
	type node struct {
		self Index
	}

	a := New[node]()
	idx := a.InsertWith(func(i Index) node { return node{self: i} })
	assert.Equal(t, idx, a.At(idx).self)

	// slot reuse path
	a.Remove(idx)
	idx2 := a.InsertWith(func(i Index) node { return node{self: i} })
	assert.Equal(t, idx.Offset(), idx2.Offset())
	assert.Equal(t, idx2, a.At(idx2).self)
}

func TestAll(t *testing.T) {
	a := New[string]()
	ia := a.Insert("a")
	ib := a.Insert("b")
	ic := a.Insert("c")
	a.Remove(ib)

	var got []string
	var indices []Index
	for idx, v := range a.All() {
		indices = append(indices, idx)
		got = append(got, *v)
	}
	assert.Equal(t, []string{"a", "c"}, got, "iteration is in slot order, skipping freed slots")
	assert.Equal(t, []Index{ia, ic}, indices)

	// the iterator is restartable
	count := 0
	for range a.All() {
		count++
	}
	assert.Equal(t, a.Len(), count)

	// mutation through the yielded pointer is visible
	for _, v := range a.All() {
		*v += "!"
	}
	assert.Equal(t, "a!", *a.At(ia))
}

func TestDrain(t *testing.T) {
	a := New[int]()
	for i := 0; i < 4; i++ {
		a.Insert(i)
	}

	var drained []int
	for _, v := range a.Drain() {
		drained = append(drained, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, drained)
	assert.True(t, a.IsEmpty())
	assert.Equal(t, 4, a.Cap(), "capacity is retained")
}

func TestDrainAbandonedEarly(t *testing.T) {
	a := New[int]()
	for i := 0; i < 4; i++ {
		a.Insert(i)
	}

	for _, v := range a.Drain() {
		if v == 1 {
			break
		}
	}
	assert.True(t, a.IsEmpty(), "unvisited elements are removed as well")
}

func TestClearKeepsStaleIndicesInvalid(t *testing.T) {
	a := New[string]()
	old := a.Insert("foo")
	a.Clear()
	require.True(t, a.IsEmpty())

	fresh := a.Insert("bar")
	assert.Equal(t, old.Offset(), fresh.Offset())
	assert.False(t, a.Contains(old))
	assert.Equal(t, "bar", *a.At(fresh))
}

func TestReserve(t *testing.T) {
	a := WithCapacity[int](16)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.Cap(), "reserved slots are not allocated yet")

	for i := 0; i < 16; i++ {
		a.Insert(i)
	}
	assert.Equal(t, 16, a.Len())
}

func TestIndexStringAndCompare(t *testing.T) {
	a := New[string]()
	idx := a.Insert("foo")
	assert.Equal(t, "0v1", idx.String())

	a.Remove(idx)
	idx2 := a.Insert("bar")
	assert.Equal(t, "0v2", idx2.String())

	assert.Equal(t, -1, idx.Compare(idx2), "same slot, older generation sorts first")
	assert.Equal(t, 1, idx2.Compare(idx))
	assert.Equal(t, 0, idx2.Compare(idx2))

	idx3 := a.Insert("baz")
	assert.Equal(t, -1, idx2.Compare(idx3), "lower offset sorts first")
}
