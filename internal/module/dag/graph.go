package dag

import (
	"fregec/internal/module"
)

// Graph is an adjacency-list dependency graph over dense NodeIDs.
// Edges[from] lists the modules `from` depends on (imports). Dependents
// is the reverse adjacency - Dependents[to] lists the modules that
// import `to` - used by Toposort to propagate readiness once a
// dependency is scheduled.
type Graph struct {
	Edges      [][]NodeID
	Dependents [][]NodeID
	Present    []bool // true for nodes that are todo entries, not just someone's import
}

// Build constructs the graph from the index and the per-module meta
// list. A node is Present when it appears as a Meta.ID (an actual todo
// entry); a node only ever seen as someone's import stays absent, per
// INV-3 ("every d in D has either completed emission or been found
// absent").
func Build(idx Index, metas []Meta) Graph {
	n := len(idx.IDToName)
	g := Graph{
		Edges:      make([][]NodeID, n),
		Dependents: make([][]NodeID, n),
		Present:    make([]bool, n),
	}

	for _, m := range metas {
		if m.ID == "" {
			continue
		}
		id, ok := idx.NameToID[m.ID]
		if !ok {
			continue
		}
		g.Present[id] = true
	}

	for _, m := range metas {
		if m.ID == "" {
			continue
		}
		from, ok := idx.NameToID[m.ID]
		if !ok || len(m.Imports) == 0 {
			continue
		}
		seen := make(map[NodeID]struct{}, len(m.Imports))
		for _, dep := range m.Imports {
			to, ok := idx.NameToID[dep]
			if !ok || to == from || !g.Present[to] {
				continue
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			g.Edges[from] = append(g.Edges[from], to)
			g.Dependents[to] = append(g.Dependents[to], from)
		}
	}

	return g
}

// Dependencies returns the dependency NodeIDs of a module by its ID.
func (g Graph) Dependencies(idx Index, id module.ID) []NodeID {
	nodeID, ok := idx.NameToID[id]
	if !ok {
		return nil
	}
	return g.Edges[nodeID]
}
