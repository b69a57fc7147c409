// Package driver ties the pass registry, pass runner, printer manager,
// and host-compiler invoker into the single-file pipeline (C4) and the
// overall entry point (C9). The make-mode orchestrator lives in
// internal/orchestrator and reuses SingleFile's building blocks for its
// per-module work.
package driver

import (
	"fregec/internal/frontend"
	"fregec/internal/pass"
	"fregec/internal/state"
)

// SingleFile runs the full pass registry (C2) over a fresh compiler
// state for one input file (C4). Each file gets its own independent
// state; no cross-module leak is possible.
func SingleFile(opts state.Options, sourcePath string) *state.G {
	opts.Source = sourcePath
	g := state.New(opts)
	for _, p := range pass.FullList() {
		pass.Run(p, g)
	}
	return g
}

// Succeeded reports whether a module's pipeline completed with zero
// errors (C4, INV-5 building block).
func Succeeded(g *state.G) bool {
	return g.NumErrors() == 0
}

// ParseOnly runs just the lexer and parser over sourcePath, leaving the
// rest of the pipeline untouched. The make orchestrator (internal/
// orchestrator) uses this to discover a module's identity and imports
// before it can decide whether the module needs the remaining passes.
func ParseOnly(opts state.Options, sourcePath string) *state.G {
	opts.Source = sourcePath
	g := state.New(opts)
	pass.Run(pass.Pass{Name: "lexer", Run: frontend.Lexer}, g)
	pass.Run(pass.Pass{Name: "parser", Run: frontend.Parser}, g)
	return g
}

// RunMakeModePasses runs the make-mode pass list (pass.MakeModeList)
// over g, which must already have been through ParseOnly.
func RunMakeModePasses(g *state.G) {
	for _, p := range pass.MakeModeList() {
		pass.Run(p, g)
	}
}
