package bevi

import (
	"context"

	"github.com/oriumgames/bevi/scheduler"
)

// Schedules groups one scheduler per pipeline stage and shares a single
// resource registry between them, so a resource carries the same
// ResourceID no matter which stage's systems declare it.
type Schedules struct {
	registry   *scheduler.Registry
	schedulers [stageCount]*scheduler.Scheduler
}

// NewSchedules creates a schedule set with one empty scheduler per
// pipeline stage. The options are applied to every scheduler.
func NewSchedules(reg *scheduler.Registry, opts ...scheduler.Option) *Schedules {
	s := &Schedules{registry: reg}
	for i := range s.schedulers {
		s.schedulers[i] = scheduler.NewScheduler(opts...)
	}
	return s
}

// Registry returns the shared resource registry.
func (s *Schedules) Registry() *scheduler.Registry {
	return s.registry
}

// Scheduler returns the scheduler for the given pipeline stage.
func (s *Schedules) Scheduler(stage Stage) *scheduler.Scheduler {
	return s.schedulers[stage]
}

// Add registers a system descriptor with the given pipeline stage and
// returns its SystemID. The ID is only meaningful within that stage's
// scheduler.
func (s *Schedules) Add(stage Stage, desc *scheduler.SystemDescriptor) scheduler.SystemID {
	return s.schedulers[stage].AddSystem(desc)
}

// Run executes the schedule of a single pipeline stage.
func (s *Schedules) Run(ctx context.Context, stage Stage, res *scheduler.Resources) error {
	return s.schedulers[stage].Run(ctx, res)
}

// RunStartup executes the one-shot startup stages in pipeline order,
// stopping at the first stage error. The host is expected to call this
// exactly once.
func (s *Schedules) RunStartup(ctx context.Context, res *scheduler.Resources) error {
	for stage := PreStartup; stage <= PostStartup; stage++ {
		if err := s.schedulers[stage].Run(ctx, res); err != nil {
			return err
		}
	}
	return nil
}

// RunUpdate executes the per-frame update stages in pipeline order,
// stopping at the first stage error.
func (s *Schedules) RunUpdate(ctx context.Context, res *scheduler.Resources) error {
	for stage := PreUpdate; stage <= PostUpdate; stage++ {
		if err := s.schedulers[stage].Run(ctx, res); err != nil {
			return err
		}
	}
	return nil
}
