package scheduler

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors reported by the scheduler. Wrapped errors carry more
// detail; match with errors.Is / errors.As.
var (
	// ErrResourceCapacityExceeded is returned when a registry cannot assign
	// a new ResourceID within its fixed universe.
	ErrResourceCapacityExceeded = errors.New("scheduler: resource capacity exceeded")

	// ErrCyclicDependency is returned by Compile when explicit ordering
	// edges form a cycle. The concrete error is a *CycleError.
	ErrCyclicDependency = errors.New("scheduler: cyclic dependency")

	// ErrSystemNotFound is returned when a SystemID does not identify a
	// live system, either because it was removed or never existed.
	ErrSystemNotFound = errors.New("scheduler: system not found")
)

// CycleError reports an explicit ordering cycle found during Compile.
// Systems holds the names of the systems on the cycle, in edge order.
type CycleError struct {
	Systems []string
}

func (e *CycleError) Error() string {
	names := e.Systems
	if len(names) > 0 {
		names = append(slices.Clone(names), names[0])
	}
	return fmt.Sprintf("scheduler: cyclic dependency: %s", strings.Join(names, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicDependency
}

// SystemError reports the failure of a single system during a run.
type SystemError struct {
	ID   SystemID
	Name string
	Err  error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("system %s (%s): %v", e.Name, e.ID, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

// StageError aggregates every system failure collected in one stage. The
// stage always runs to completion before the error is reported; stages
// after the failing one are not started.
type StageError struct {
	Schedule uuid.UUID
	Stage    int
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("schedule %s stage %d: %v", e.Schedule, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
