package dag

import (
	"testing"

	"fregec/internal/module"
)

func idsToNames(idx Index, ids []NodeID) []module.ID {
	out := make([]module.ID, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[id]
	}
	return out
}

func TestBuildIndexIncludesImportsOnly(t *testing.T) {
	metas := []Meta{
		{ID: "Top", Imports: []module.ID{"Mid"}},
		{ID: "Mid", Imports: []module.ID{"Bot"}},
	}
	idx := BuildIndex(metas)
	if len(idx.IDToName) != 3 {
		t.Fatalf("unexpected module count: %d", len(idx.IDToName))
	}
	want := []module.ID{"Bot", "Mid", "Top"} // sorted
	for i, w := range want {
		if idx.IDToName[i] != w {
			t.Fatalf("IDToName[%d] = %q, want %q", i, idx.IDToName[i], w)
		}
	}
}

func TestToposortOrdersDependenciesFirst(t *testing.T) {
	metas := []Meta{
		{ID: "Top", Imports: []module.ID{"Mid"}},
		{ID: "Mid", Imports: []module.ID{"Bot"}},
		{ID: "Bot"},
	}
	idx := BuildIndex(metas)
	g := Build(idx, metas)
	topo := Toposort(g)
	if topo.Cyclic {
		t.Fatalf("unexpected cycle")
	}
	names := idsToNames(idx, topo.Order)
	pos := map[module.ID]int{}
	for i, n := range names {
		pos[n] = i
	}
	if pos["Bot"] > pos["Mid"] || pos["Mid"] > pos["Top"] {
		t.Fatalf("dependency order violated: %v", names)
	}
	if len(topo.Batches) != 3 {
		t.Fatalf("expected 3 sequential batches for a linear chain, got %d", len(topo.Batches))
	}
}

func TestToposortBatchesIndependentModules(t *testing.T) {
	metas := []Meta{
		{ID: "Top", Imports: []module.ID{"A", "B"}},
		{ID: "A"},
		{ID: "B"},
	}
	idx := BuildIndex(metas)
	g := Build(idx, metas)
	topo := Toposort(g)
	if len(topo.Batches) != 2 {
		t.Fatalf("expected 2 batches (A,B then Top), got %d: %v", len(topo.Batches), topo.Batches)
	}
	if len(topo.Batches[0]) != 2 {
		t.Fatalf("expected first batch to contain both independent modules, got %v", topo.Batches[0])
	}
}

func TestToposortDetectsCycle(t *testing.T) {
	metas := []Meta{
		{ID: "A", Imports: []module.ID{"B"}},
		{ID: "B", Imports: []module.ID{"A"}},
	}
	idx := BuildIndex(metas)
	g := Build(idx, metas)
	topo := Toposort(g)
	if !topo.Cyclic {
		t.Fatalf("expected cycle to be detected")
	}
	if len(topo.Cycles) != 2 {
		t.Fatalf("expected both modules flagged as cyclic, got %v", topo.Cycles)
	}
}

func TestGraphIgnoresAbsentImports(t *testing.T) {
	metas := []Meta{
		{ID: "Top", Imports: []module.ID{"Missing"}},
	}
	idx := BuildIndex(metas)
	g := Build(idx, metas)
	topID := idx.NameToID["Top"]
	if len(g.Edges[topID]) != 0 {
		t.Fatalf("expected no edge to a non-present dependency, got %v", g.Edges[topID])
	}
}
