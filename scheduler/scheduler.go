package scheduler

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/oriumgames/bevi/arena"
)

// State describes where a Scheduler is in its lifecycle.
type State int32

const (
	// StateBuilding means systems are being added or removed and the
	// compiled graph is stale (or was never computed).
	StateBuilding State = iota

	// StateCompiled means the dependency graph is computed and the
	// schedule is ready to run.
	StateCompiled

	// StateRunning means a run is currently executing a stage.
	StateRunning
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateBuilding:
		return "Building"
	case StateCompiled:
		return "Compiled"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// Scheduler owns a table of systems and compiles them into a
// CompiledSchedule of barrier stages in which no two concurrently placed
// systems have conflicting resource access.
//
// The system table is arena-backed: SystemIDs stay stable across
// unrelated adds and removes, and stale IDs are rejected rather than
// silently resolving to a different system.
type Scheduler struct {
	mu       sync.Mutex
	systems  *arena.Arena[*SystemDescriptor]
	compiled *CompiledSchedule
	dirty    bool

	running atomic.Int32

	log  *zap.Logger
	exec Executor
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for compile and run diagnostics. The
// default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) {
		s.log = log
	}
}

// WithExecutor sets the executor used to run the systems of a stage. The
// default is a PoolExecutor sized to GOMAXPROCS.
func WithExecutor(exec Executor) Option {
	return func(s *Scheduler) {
		s.exec = exec
	}
}

// NewScheduler creates an empty scheduler in the Building state.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		systems: arena.New[*SystemDescriptor](),
		dirty:   true,
		log:     zap.NewNop(),
		exec:    &PoolExecutor{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the scheduler's current lifecycle state.
func (s *Scheduler) State() State {
	if s.running.Load() > 0 {
		return StateRunning
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty || s.compiled == nil {
		return StateBuilding
	}
	return StateCompiled
}

// AddSystem inserts a system descriptor into the system table and returns
// its SystemID. Any compiled schedule is invalidated; the next Compile or
// Run recomputes the graph.
func (s *Scheduler) AddSystem(desc *SystemDescriptor) SystemID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	return s.systems.Insert(desc)
}

// RemoveSystem removes the system with the given id from the table. It
// fails with ErrSystemNotFound if the id is stale or unknown. Any compiled
// schedule is invalidated.
func (s *Scheduler) RemoveSystem(id SystemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.systems.Remove(id); !ok {
		return ErrSystemNotFound
	}
	s.dirty = true
	return nil
}

// Len returns the number of systems in the table.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.systems.Len()
}

// Compile computes conflict and explicit ordering edges over the current
// system set and arranges the systems into barrier stages. Given the same
// system set and masks it always produces the same stage assignment.
//
// A failed compile leaves the previously compiled schedule untouched and
// usable.
func (s *Scheduler) Compile() (*CompiledSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compileLocked()
}

func (s *Scheduler) compileLocked() (*CompiledSchedule, error) {
	nodes := make([]*graphNode, 0, s.systems.Len())
	for id, desc := range s.systems.All() {
		nodes = append(nodes, &graphNode{id: id, desc: *desc})
	}
	slices.SortFunc(nodes, func(a, b *graphNode) int {
		return a.id.Compare(b.id)
	})

	if err := buildGraph(nodes); err != nil {
		return nil, err
	}
	stages, err := layout(nodes)
	if err != nil {
		return nil, err
	}

	compiled := newCompiledSchedule(stages, s.exec, s.log)
	s.compiled = compiled
	s.dirty = false

	s.log.Debug("schedule compiled",
		zap.String("schedule", compiled.ID().String()),
		zap.Int("systems", len(nodes)),
		zap.Int("stages", compiled.NumStages()),
	)
	return compiled, nil
}

// Run executes the compiled schedule against the given resources,
// recompiling first if the system set changed since the last compile.
//
// Stages run strictly in order with barrier semantics: a stage's systems
// may run concurrently, and the next stage starts only after all of them
// completed. Failures within a stage are collected and reported as a
// *StageError after the barrier; the schedule remains runnable afterwards.
func (s *Scheduler) Run(ctx context.Context, res *Resources) error {
	s.mu.Lock()
	compiled := s.compiled
	if s.dirty || compiled == nil {
		var err error
		compiled, err = s.compileLocked()
		if err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.mu.Unlock()

	s.running.Add(1)
	defer s.running.Add(-1)
	return compiled.Run(ctx, res)
}
