// Package bevi provides the core infrastructure of the bevi game engine:
// a generational arena allocator and a resource-aware system scheduler.
//
// The heavy lifting lives in the subpackages:
//
//   - arena: slot-based storage with generational indices that detect
//     stale references after removal and slot reuse.
//   - scheduler: registers systems with declared read/write resource
//     access and compiles them into barrier stages safe for concurrent
//     execution.
//
// This package ties them together for hosts: pipeline Stage labels and
// the Schedules set, which keeps one scheduler per pipeline stage over a
// shared resource registry.
//
// # Quick Start
//
//	reg := scheduler.NewRegistry(64)
//	schedules := bevi.NewSchedules(reg)
//
//	move := schedules.Add(bevi.Update, scheduler.NewSystem("movement", moveRunner).
//	    WithAccess(scheduler.NewAccess(reg).Writes("Transform").MustBuild()))
//	schedules.Add(bevi.Update, scheduler.NewSystem("animation", animRunner).
//	    WithAccess(scheduler.NewAccess(reg).Reads("Transform").MustBuild()).
//	    After(move))
//
//	res := scheduler.NewResources(reg)
//	res.Insert("Transform", transforms)
//
//	if err := schedules.RunStartup(ctx, res); err != nil {
//	    return err
//	}
//	for running {
//	    if err := schedules.RunUpdate(ctx, res); err != nil {
//	        return err
//	    }
//	}
//
// Windowing, rendering and input integration build on top of this core
// and live in their own modules.
package bevi

// Version is the bevi core version.
const Version = "0.1.0"
