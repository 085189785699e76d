package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// compiledSystem is the immutable per-system snapshot a CompiledSchedule
// executes: the descriptor's state at compile time, detached from the
// scheduler's mutable table.
type compiledSystem struct {
	id     SystemID
	name   string
	access Access
	runner Runner
}

// CompiledSchedule is an immutable arrangement of systems into ordered
// barrier stages. It is produced by Scheduler.Compile and stays valid and
// runnable even after the scheduler's system table changes or a later
// compile fails.
type CompiledSchedule struct {
	id     uuid.UUID
	stages [][]compiledSystem
	exec   Executor
	log    *zap.Logger
}

func newCompiledSchedule(stages [][]*graphNode, exec Executor, log *zap.Logger) *CompiledSchedule {
	c := &CompiledSchedule{
		id:     uuid.New(),
		stages: make([][]compiledSystem, len(stages)),
		exec:   exec,
		log:    log,
	}
	for i, stage := range stages {
		c.stages[i] = make([]compiledSystem, len(stage))
		for j, n := range stage {
			c.stages[i][j] = compiledSystem{
				id:     n.id,
				name:   n.desc.name,
				access: n.desc.access,
				runner: n.desc.runner,
			}
		}
	}
	return c
}

// ID returns the unique identifier of this compiled schedule, used to
// correlate log entries and run errors.
func (c *CompiledSchedule) ID() uuid.UUID {
	return c.id
}

// NumStages returns the number of barrier stages.
func (c *CompiledSchedule) NumStages() int {
	return len(c.stages)
}

// NumSystems returns the total number of systems across all stages.
func (c *CompiledSchedule) NumSystems() int {
	n := 0
	for _, stage := range c.stages {
		n += len(stage)
	}
	return n
}

// Stages returns the system names per stage, in execution order. Within a
// stage, names are listed in ascending SystemID order.
func (c *CompiledSchedule) Stages() [][]string {
	stages := make([][]string, len(c.stages))
	for i, stage := range c.stages {
		stages[i] = make([]string, len(stage))
		for j, sys := range stage {
			stages[i][j] = sys.name
		}
	}
	return stages
}

// Run executes the stages strictly in order against the given resources.
//
// Within a stage all systems are submitted to the executor at once; their
// declared access masks are pairwise non-conflicting by construction, so
// they may run concurrently. The stage always runs to completion, even
// when systems fail: failures (including recovered panics) are collected
// and reported together as a *StageError, and stages after the failing one
// are not started. Writes committed by stage k are visible to every system
// of stage k+1.
func (c *CompiledSchedule) Run(ctx context.Context, res *Resources) error {
	for stageIdx, stage := range c.stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("schedule %s stage %d: %w", c.id, stageIdx, err)
		}

		errs := make([]error, len(stage))
		fns := make([]func(), len(stage))
		for i, sys := range stage {
			view := &View{system: sys.name, access: sys.access, res: res}
			runner := sys.runner
			slot := &errs[i]
			fns[i] = func() {
				defer func() {
					if r := recover(); r != nil {
						*slot = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
					}
				}()
				*slot = runner.Run(ctx, view)
			}
		}
		c.exec.Execute(fns)

		var combined error
		for i, err := range errs {
			if err == nil {
				continue
			}
			combined = multierr.Append(combined, &SystemError{
				ID:   stage[i].id,
				Name: stage[i].name,
				Err:  err,
			})
		}
		if combined != nil {
			c.log.Error("stage failed",
				zap.String("schedule", c.id.String()),
				zap.Int("stage", stageIdx),
				zap.Int("failures", len(multierr.Errors(combined))),
				zap.Error(combined),
			)
			return &StageError{Schedule: c.id, Stage: stageIdx, Err: combined}
		}
	}
	return nil
}
