// Package dag builds a module dependency graph by module identity and
// schedules rebuilds via topological batches, using
// fortio.org/safecast-checked numeric module IDs. The make orchestrator
// (internal/orchestrator) resolves the todo mapping lazily - a module
// referenced only by name is not parsed, and its own imports stay
// unknown, until discovery reaches it - but once that mapping is
// complete it is handed to this package whole: Build turns it into a
// Graph and Toposort computes the batches the orchestrator schedules.
package dag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"fregec/internal/module"
)

// NodeID is a dense numeric id assigned to each module seen, either as a
// root or purely as someone else's dependency.
type NodeID uint32

// Index maps module identities to dense NodeIDs and back.
type Index struct {
	NameToID map[module.ID]NodeID
	IDToName []module.ID
}

// Meta is the minimal per-module information the graph needs: its
// identity and the modules it imports.
type Meta struct {
	ID      module.ID
	Imports []module.ID
}

// BuildIndex collects every module path mentioned either as a node or
// as an import, sorts them for determinism, and assigns dense ids.
func BuildIndex(metas []Meta) Index {
	uniq := make(map[module.ID]struct{}, len(metas))
	for _, m := range metas {
		if m.ID != "" {
			uniq[m.ID] = struct{}{}
		}
		for _, dep := range m.Imports {
			if dep != "" {
				uniq[dep] = struct{}{}
			}
		}
	}

	names := make([]module.ID, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	nameToID := make(map[module.ID]NodeID, len(names))
	for i, name := range names {
		id, err := safecast.Conv[NodeID](i)
		if err != nil {
			panic(fmt.Errorf("dag: module id overflow: %w", err))
		}
		nameToID[name] = id
	}

	return Index{NameToID: nameToID, IDToName: names}
}
