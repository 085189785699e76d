package scheduler

import (
	"fmt"
	"slices"
)

// graphNode is one system in the dependency graph built by Compile. The
// graph is derived, transient data: it is recomputed from the live system
// table on every compile and never persisted.
type graphNode struct {
	id   SystemID
	desc *SystemDescriptor

	// explicit ordering edges from Before/After declarations, as node
	// positions
	succs []int
	preds []int

	stage int
}

// buildGraph resolves the explicit ordering edges of the given nodes
// (sorted by ascending SystemID) to node positions. Edges referring to
// stale or unknown systems fail with ErrSystemNotFound.
func buildGraph(nodes []*graphNode) error {
	pos := make(map[SystemID]int, len(nodes))
	for i, n := range nodes {
		pos[n.id] = i
		n.stage = -1
	}

	addEdge := func(from, to int) {
		if !slices.Contains(nodes[from].succs, to) {
			nodes[from].succs = append(nodes[from].succs, to)
			nodes[to].preds = append(nodes[to].preds, from)
		}
	}

	for i, n := range nodes {
		for _, target := range n.desc.runBefore {
			j, ok := pos[target]
			if !ok {
				return fmt.Errorf("system %s orders before unknown system %s: %w", n.desc.name, target, ErrSystemNotFound)
			}
			addEdge(i, j)
		}
		for _, target := range n.desc.runAfter {
			j, ok := pos[target]
			if !ok {
				return fmt.Errorf("system %s orders after unknown system %s: %w", n.desc.name, target, ErrSystemNotFound)
			}
			addEdge(j, i)
		}
	}
	return nil
}

// layout arranges the graph into barrier stages.
//
// Systems are ordered topologically over the explicit edges (Kahn's
// algorithm, taking ready systems in ascending SystemID order so the
// result is deterministic). Each system is then placed into the earliest
// stage that is after all its explicit predecessors and holds no system
// with conflicting access. A conflicting pair without an explicit ordering
// therefore ends up serialized in ascending SystemID order.
func layout(nodes []*graphNode) ([][]*graphNode, error) {
	ready := make([]int, 0, len(nodes))
	indegree := make([]int, len(nodes))
	for i, n := range nodes {
		indegree[i] = len(n.preds)
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	var stages [][]*graphNode
	placed := 0
	for len(ready) > 0 {
		// nodes are pre-sorted by SystemID, so ascending positions are
		// ascending IDs
		slices.Sort(ready)
		i := ready[0]
		ready = ready[1:]
		n := nodes[i]

		stage := 0
		for _, p := range n.preds {
			// topological order guarantees predecessors are placed
			if s := nodes[p].stage + 1; s > stage {
				stage = s
			}
		}
		for stage < len(stages) && conflictsWithStage(n, stages[stage]) {
			stage++
		}
		if stage == len(stages) {
			stages = append(stages, nil)
		}
		n.stage = stage
		stages[stage] = append(stages[stage], n)
		placed++

		for _, succ := range n.succs {
			indegree[succ]--
			if indegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
	}

	if placed < len(nodes) {
		return nil, findCycle(nodes)
	}

	for _, stage := range stages {
		slices.SortFunc(stage, func(a, b *graphNode) int {
			return a.id.Compare(b.id)
		})
	}
	return stages, nil
}

func conflictsWithStage(n *graphNode, stage []*graphNode) bool {
	for _, other := range stage {
		if n.desc.access.ConflictsWith(other.desc.access) {
			return true
		}
	}
	return false
}

// findCycle extracts one explicit ordering cycle from the nodes left
// unplaced by layout, for diagnosability. Every unplaced node has at least
// one unplaced predecessor, so walking predecessors within the unplaced
// set must revisit a node.
func findCycle(nodes []*graphNode) *CycleError {
	unplaced := func(i int) bool { return nodes[i].stage < 0 }

	start := -1
	for i := range nodes {
		if unplaced(i) {
			start = i
			break
		}
	}

	seen := make(map[int]int) // position -> index in walk
	var walk []int
	cur := start
	for {
		if at, ok := seen[cur]; ok {
			walk = walk[at:]
			break
		}
		seen[cur] = len(walk)
		walk = append(walk, cur)
		for _, p := range nodes[cur].preds {
			if unplaced(p) {
				cur = p
				break
			}
		}
	}

	// the walk followed predecessors; reverse it to list the cycle in
	// edge order
	slices.Reverse(walk)
	names := make([]string, len(walk))
	for i, p := range walk {
		names[i] = nodes[p].desc.name
	}
	return &CycleError{Systems: names}
}
