// Package scheduler computes safe concurrent execution orders for systems
// over shared resources.
//
// Systems are registered with declared resource access: a read set and a
// write set over resource keys, resolved to dense ResourceIDs by a
// Registry and tracked as bitset masks. Compiling a schedule detects
// pairwise access conflicts (at least one side writes a resource the other
// touches), combines them with explicit Before/After ordering edges, and
// arranges the systems into barrier stages: systems within a stage have
// pairwise non-conflicting access and may run concurrently, while stages
// run strictly in order.
//
// # Quick start
//
//	reg := scheduler.NewRegistry(64)
//	sched := scheduler.NewScheduler()
//
//	move := sched.AddSystem(scheduler.NewSystem("movement", moveRunner).
//	    WithAccess(scheduler.NewAccess(reg).Reads("Input").Writes("Transform").MustBuild()))
//	sched.AddSystem(scheduler.NewSystem("render-extract", extractRunner).
//	    WithAccess(scheduler.NewAccess(reg).Reads("Transform").MustBuild()).
//	    After(move))
//
//	res := scheduler.NewResources(reg)
//	res.Insert("Input", input)
//	res.Insert("Transform", transforms)
//
//	if err := sched.Run(ctx, res); err != nil {
//	    // *StageError aggregating every failure of the failing stage
//	}
//
// Compilation is deterministic: the same system set and masks always yield
// the same stage assignment, with conflicting unordered pairs serialized
// in ascending SystemID order. Structural mutation (AddSystem,
// RemoveSystem, Resources.Insert) belongs between runs, never inside one.
package scheduler
