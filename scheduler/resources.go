package scheduler

import (
	"fmt"
	"sync"
)

// Resources is the shared execution context: one value per ResourceID. It
// is the only shared-mutable object systems operate on during a run.
//
// Inserting resources is safe between runs. During a run the stage layout
// guarantees that no two systems with conflicting declared access execute
// concurrently, so no additional locking is applied per value.
type Resources struct {
	mu     sync.RWMutex
	reg    *Registry
	values []any
}

// NewResources creates an empty resource container bound to the given
// registry.
func NewResources(reg *Registry) *Resources {
	return &Resources{
		reg:    reg,
		values: make([]any, reg.Capacity()),
	}
}

// Registry returns the registry resolving keys to ResourceIDs.
func (r *Resources) Registry() *Registry {
	return r.reg
}

// Insert stores value under key, assigning a ResourceID if the key is new.
// Inserting must not happen while a schedule is running.
func (r *Resources) Insert(key string, value any) (ResourceID, error) {
	id, err := r.reg.IDOf(key)
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	r.values[id] = value
	r.mu.Unlock()
	return id, nil
}

// Get returns the value stored under id, or false if none is present.
func (r *Resources) Get(id ResourceID) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.values) || r.values[id] == nil {
		return nil, false
	}
	return r.values[id], true
}

// GetKey returns the value stored under key, or false if the key is
// unknown or has no value.
func (r *Resources) GetKey(key string) (any, bool) {
	id, ok := r.reg.Lookup(key)
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

// View is the facade a system sees during execution. It restricts resource
// access to the system's declared masks: touching an undeclared resource
// is a programming contract violation and panics with the system name and
// resource key.
type View struct {
	system string
	access Access
	res    *Resources
}

// Get returns the resource stored under key for reading. It panics if the
// system declared neither read nor write access to the key, and reports
// false if no value is present.
func (v *View) Get(key string) (any, bool) {
	id := v.resolve(key)
	if !v.access.CanRead(id) {
		panic(fmt.Sprintf("scheduler: system %s reads undeclared resource %q", v.system, key))
	}
	return v.res.Get(id)
}

// GetMut returns the resource stored under key for mutation. It panics if
// the system did not declare write access to the key, and reports false if
// no value is present.
func (v *View) GetMut(key string) (any, bool) {
	id := v.resolve(key)
	if !v.access.CanWrite(id) {
		panic(fmt.Sprintf("scheduler: system %s writes undeclared resource %q", v.system, key))
	}
	return v.res.Get(id)
}

func (v *View) resolve(key string) ResourceID {
	id, ok := v.res.reg.Lookup(key)
	if !ok {
		panic(fmt.Sprintf("scheduler: system %s touches unknown resource %q", v.system, key))
	}
	return id
}
