// Package orchestrator implements the make-mode dependency orchestrator
// (C7): it discovers every module reachable from the command-line
// roots, builds a module dependency graph over that todo mapping, and
// schedules rebuilds batch by batch in topological order (§3, §4.7).
package orchestrator

import (
	"fregec/internal/module"
	"fregec/internal/state"
)

// Kind distinguishes the two todo-entry shapes (§3).
type Kind uint8

const (
	// CompileAfterDeps is a module whose source has already been
	// located and parsed; only its dependencies stand between it and
	// the remaining passes.
	CompileAfterDeps Kind = iota
	// CheckUpdate is a module known only by name, with its source
	// already located; it still needs parsing before it can be
	// compiled.
	CheckUpdate
)

// entry is one todo-mapping row. reason is retained for diagnostics
// ("root", "imported by Bar") but is not load-bearing
// for scheduling.
type entry struct {
	kind   Kind
	id     module.ID
	path   string // known source path, set at insertion time for both kinds
	reason string
	g      *state.G // set once parsed; nil until discoverOne (or the root parse) runs

	success bool // valid only after the entry's scheduled batch has run
}

func newEntry(kind Kind, id module.ID, path, reason string) *entry {
	return &entry{kind: kind, id: id, path: path, reason: reason}
}
