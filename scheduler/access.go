package scheduler

import (
	"go.uber.org/multierr"

	"github.com/bits-and-blooms/bitset"
)

// Access describes what resources a system reads and writes, as bitset
// masks over ResourceID. The zero value declares no access at all.
//
// Write access to a resource is exclusive against any other access to the
// same resource within one stage; multiple simultaneous reads are
// compatible.
type Access struct {
	reads  *bitset.BitSet
	writes *bitset.BitSet
}

// NewAccess starts building an Access against the given registry. Keys are
// resolved (and assigned, if new) through the registry; resolution errors
// accumulate and surface at Build.
func NewAccess(reg *Registry) *AccessBuilder {
	return &AccessBuilder{reg: reg}
}

// AccessBuilder accumulates declared reads and writes for one system.
type AccessBuilder struct {
	reg    *Registry
	access Access
	err    error
}

// Reads declares read access to the given resource keys.
func (b *AccessBuilder) Reads(keys ...string) *AccessBuilder {
	b.access.reads = b.set(b.access.reads, keys)
	return b
}

// Writes declares write access to the given resource keys.
func (b *AccessBuilder) Writes(keys ...string) *AccessBuilder {
	b.access.writes = b.set(b.access.writes, keys)
	return b
}

func (b *AccessBuilder) set(mask *bitset.BitSet, keys []string) *bitset.BitSet {
	for _, key := range keys {
		id, err := b.reg.IDOf(key)
		if err != nil {
			b.err = multierr.Append(b.err, err)
			continue
		}
		if mask == nil {
			mask = bitset.New(uint(b.reg.Capacity()))
		}
		mask.Set(uint(id))
	}
	return mask
}

// Build returns the accumulated Access. It fails if any declared key could
// not be assigned a ResourceID.
func (b *AccessBuilder) Build() (Access, error) {
	if b.err != nil {
		return Access{}, b.err
	}
	return b.access, nil
}

// MustBuild is like Build but panics on error. Intended for static system
// declarations where the resource universe is known to be large enough.
func (b *AccessBuilder) MustBuild() Access {
	access, err := b.Build()
	if err != nil {
		panic(err)
	}
	return access
}

// ConflictsWith reports whether two access patterns cannot run in the same
// stage: at least one side writes a resource the other reads or writes.
// Overlapping reads alone never conflict.
func (a Access) ConflictsWith(other Access) bool {
	return intersects(a.writes, other.writes) ||
		intersects(a.writes, other.reads) ||
		intersects(a.reads, other.writes)
}

// Disjoint reports whether the two access patterns touch no common
// resource in any mode.
func (a Access) Disjoint(other Access) bool {
	return !intersects(a.reads, other.reads) &&
		!intersects(a.reads, other.writes) &&
		!intersects(a.writes, other.reads) &&
		!intersects(a.writes, other.writes)
}

// CanRead reports whether the access declares read or write access to id.
// Write access implies read access.
func (a Access) CanRead(id ResourceID) bool {
	return testBit(a.reads, id) || testBit(a.writes, id)
}

// CanWrite reports whether the access declares write access to id.
func (a Access) CanWrite(id ResourceID) bool {
	return testBit(a.writes, id)
}

// Clone returns a deep copy of the access masks.
func (a Access) Clone() Access {
	return Access{reads: cloneMask(a.reads), writes: cloneMask(a.writes)}
}

func intersects(a, b *bitset.BitSet) bool {
	if a == nil || b == nil {
		return false
	}
	return a.IntersectionCardinality(b) > 0
}

func testBit(mask *bitset.BitSet, id ResourceID) bool {
	return mask != nil && mask.Test(uint(id))
}

func cloneMask(mask *bitset.BitSet) *bitset.BitSet {
	if mask == nil {
		return nil
	}
	return mask.Clone()
}
