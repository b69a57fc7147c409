// Package pass implements the pass pipeline engine (C2/C3): the fixed,
// ordered list of named compilation stages and the runner that executes
// one stage, measuring time, draining diagnostics, and deciding whether
// later stages may run.
package pass

import "fregec/internal/state"

// Op is a single pass's operation: it mutates g and reports the kind
// and count of items it processed, for the timing/throughput line
// (§4.3). It signals failure only by appending an error-severity
// message to g.Sub.Messages; no pass returns an error value.
type Op func(g *state.G) (itemKind string, itemCount int)

// Pass pairs an operation with the human-readable description printed
// in verbose mode (§3 "Pass").
type Pass struct {
	Name        string
	Description string
	Run         Op
}
