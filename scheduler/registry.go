package scheduler

import (
	"fmt"
	"sync"
)

// ResourceID is a small dense integer naming one resource (a component
// storage, a shared context object) that systems may read or write. IDs
// are assigned once per distinct key and never reused within a registry's
// lifetime, so access masks recorded earlier stay meaningful.
type ResourceID uint32

// DefaultResourceCapacity is the universe size used when NewRegistry is
// called with a non-positive capacity.
const DefaultResourceCapacity = 256

// Registry assigns each distinct resource key a stable ResourceID within a
// fixed universe. It is read-mostly and safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	capacity int
	ids      map[string]ResourceID
	keys     []string
}

// NewRegistry creates a registry with the given universe size. Capacities
// below 1 fall back to DefaultResourceCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity < 1 {
		capacity = DefaultResourceCapacity
	}
	return &Registry{
		capacity: capacity,
		ids:      make(map[string]ResourceID),
	}
}

// IDOf returns the ResourceID for key, assigning a new one if the key has
// not been seen before. It is idempotent: the same key always yields the
// same ID. Assigning beyond the registry's capacity fails with
// ErrResourceCapacityExceeded.
func (r *Registry) IDOf(key string) (ResourceID, error) {
	r.mu.RLock()
	id, ok := r.ids[key]
	r.mu.RUnlock()
	if ok {
		return id, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[key]; ok {
		return id, nil
	}
	if len(r.keys) >= r.capacity {
		return 0, fmt.Errorf("%w: cannot assign %q, universe size is %d", ErrResourceCapacityExceeded, key, r.capacity)
	}
	id = ResourceID(len(r.keys))
	r.ids[key] = id
	r.keys = append(r.keys, key)
	return id, nil
}

// Lookup returns the ResourceID for key without assigning one.
func (r *Registry) Lookup(key string) (ResourceID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[key]
	return id, ok
}

// Key returns the key that was assigned the given ResourceID.
func (r *Registry) Key(id ResourceID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.keys) {
		return "", false
	}
	return r.keys[id], true
}

// Len returns the number of assigned resource IDs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// Capacity returns the fixed universe size of this registry.
func (r *Registry) Capacity() int {
	return r.capacity
}
