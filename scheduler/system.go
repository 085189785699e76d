package scheduler

import (
	"context"

	"github.com/oriumgames/bevi/arena"
)

// SystemID identifies a system in a Scheduler's system table. It is a
// generational arena index: after RemoveSystem the ID goes stale and is
// rejected by all scheduler operations.
type SystemID = arena.Index

// Runner is the unit of work wrapped by a SystemDescriptor. The scheduler
// only needs the declared access masks and this invocation capability, not
// the concrete implementing type.
//
// Run receives the shared resources through a View that is scoped to the
// system's declared access. Within a stage there is no ordering guarantee
// between systems; a runner must not assume any relative execution order
// beyond the absence of conflicting access.
type Runner interface {
	Run(ctx context.Context, res *View) error
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, res *View) error

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, res *View) error {
	return f(ctx, res)
}

// SystemDescriptor wraps a Runner with its declared resource access and
// its explicit ordering constraints. Descriptors are owned by the
// scheduler once added; other code refers to them only by SystemID.
type SystemDescriptor struct {
	name      string
	access    Access
	runBefore []SystemID
	runAfter  []SystemID
	runner    Runner
}

// NewSystem creates a descriptor for the given runner. The name is used in
// diagnostics and stage listings; it should be unique but this is not
// enforced.
func NewSystem(name string, runner Runner) *SystemDescriptor {
	return &SystemDescriptor{name: name, runner: runner}
}

// WithAccess declares the resources the system reads and writes.
func (d *SystemDescriptor) WithAccess(access Access) *SystemDescriptor {
	d.access = access
	return d
}

// Before declares that this system must run in an earlier stage than the
// given systems.
func (d *SystemDescriptor) Before(ids ...SystemID) *SystemDescriptor {
	d.runBefore = append(d.runBefore, ids...)
	return d
}

// After declares that this system must run in a later stage than the given
// systems.
func (d *SystemDescriptor) After(ids ...SystemID) *SystemDescriptor {
	d.runAfter = append(d.runAfter, ids...)
	return d
}

// Name returns the system's diagnostic name.
func (d *SystemDescriptor) Name() string {
	return d.name
}

// Access returns the system's declared resource access.
func (d *SystemDescriptor) Access() Access {
	return d.access
}
