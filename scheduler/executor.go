package scheduler

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Executor runs the systems of one stage. Execute must return only after
// every function has completed; this is what gives stages their barrier
// semantics. Implementations decide how much of the stage actually runs in
// parallel.
type Executor interface {
	Execute(fns []func())
}

// SerialExecutor runs the stage's systems one after another on the calling
// goroutine. Useful for tests and for hosts without spare cores.
type SerialExecutor struct{}

// Execute runs each function in order.
func (SerialExecutor) Execute(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}

// PoolExecutor runs the stage's systems concurrently with a bounded number
// of workers. The zero value is valid and sizes the pool to GOMAXPROCS.
type PoolExecutor struct {
	// Workers limits concurrent systems. Values below 1 fall back to
	// GOMAXPROCS.
	Workers int
}

// Execute runs all functions concurrently, bounded by the worker count,
// and returns once all of them have completed.
func (p *PoolExecutor) Execute(fns []func()) {
	workers := p.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, fn := range fns {
		g.Go(func() error {
			fn()
			return nil
		})
	}
	// fns never return errors through the group; failures are collected
	// by the caller per slot
	_ = g.Wait()
}
