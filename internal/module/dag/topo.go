package dag

import "sort"

// Topo is the result of a Kahn topological sort over a Graph.
type Topo struct {
	Order   []NodeID   // linear order, dependencies before dependents, present nodes only
	Batches [][]NodeID // waves of mutually-independent modules, in dependency order
	Cyclic  bool
	Cycles  []NodeID // present nodes that could not be ordered
}

// Toposort runs Kahn's algorithm over the dependency edges, batching
// nodes that become ready (all of their present dependencies already
// ordered) in the same wave so the caller can schedule a whole batch
// concurrently. Ties within a batch are broken by ascending NodeID for
// determinism.
func Toposort(g Graph) Topo {
	n := len(g.Edges)
	remaining := make([]int, n)
	for i := 0; i < n; i++ {
		remaining[i] = len(g.Edges[i])
	}

	topo := Topo{
		Order:   make([]NodeID, 0, n),
		Batches: make([][]NodeID, 0),
	}

	active := 0
	for i := 0; i < n; i++ {
		if g.Present[i] {
			active++
		}
	}

	current := make([]NodeID, 0, n)
	for i := 0; i < n; i++ {
		if g.Present[i] && remaining[i] == 0 {
			current = append(current, NodeID(i))
		}
	}
	sort.Slice(current, func(i, j int) bool { return current[i] < current[j] })

	visited := 0
	for len(current) > 0 {
		batch := make([]NodeID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]NodeID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, dependent := range g.Dependents[id] {
				remaining[dependent]--
				if remaining[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}
		sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
		current = next
	}

	if visited != active {
		topo.Cyclic = true
		for i := 0; i < n; i++ {
			if g.Present[i] && remaining[i] > 0 {
				topo.Cycles = append(topo.Cycles, NodeID(i))
			}
		}
		sort.Slice(topo.Cycles, func(i, j int) bool { return topo.Cycles[i] < topo.Cycles[j] })
	}

	return topo
}
