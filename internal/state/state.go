// Package state defines the compiler state G threaded through every
// pass (spec §3). Each driver instance owns exactly one G; no aliasing
// is required and parallel drivers hold disjoint Gs (spec §9).
package state

import (
	"io"
	"os"

	"fregec/internal/diag"
	"fregec/internal/module"
	"fregec/internal/printer"
	"fregec/internal/source"
)

// Options is the user-supplied configuration copied into every G (§3).
type Options struct {
	Make           bool
	Verbose        bool
	IdeMode        bool
	RunJavac       bool
	OutputDir      string
	SourcePath     []string
	ClassPath      []string
	JavacOverride  string // not set by the driver; internal/hostcompiler reads FREGEC_JAVAC itself
	Jobs           int
	Color          bool
	IDEExportPath  string // msgpack diagnostics dump path, IDE mode only
	PrintCommands  bool
	Source         string    // current input file name, "-" routes emission to stdout (nothing is read from stdin)
	Stderr         io.Writer // diagnostics/timing destination; nil means os.Stderr
}

// Sub holds the per-module compilation artefacts threaded between
// passes: tokens, parsed definitions, module identity, and diagnostics.
type Sub struct {
	Tokens     []source.Token // whitespace-split token stream (real lexing is out of scope, spec §1)
	SourceDefs []string       // placeholder parsed top-level definitions
	ThisPack   module.ID
	Imports    []module.ID
	Messages   diag.Sink
}

// Gen holds code-generation state: the current output sink and the
// path it was opened at (retained after close-printer so the
// host-compiler invocation pass knows what file to hand javac).
type Gen struct {
	Printer  printer.Sink
	LastPath string
}

// G is the mutable record threaded through every pass (§3). Allocate a
// fresh G per module with New; never reuse one across modules.
type G struct {
	Options Options
	Sub     Sub
	Gen     Gen
	Stderr  io.Writer
}

// New allocates a fresh compiler state for a single module, copying the
// caller's options in and defaulting Stderr to os.Stderr (§4.4).
func New(opts Options) *G {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	g := &G{Options: opts, Stderr: stderr}
	g.Gen.Printer = printer.Stdout()
	return g
}

// NumErrors returns the cumulative error count for this module (I1).
func (g *G) NumErrors() int {
	return g.Sub.Messages.NumErrors()
}

// HasErrors reports whether any pass has already failed this module
// (I2: no pass may run while this is true, except diagnostic reporting).
func (g *G) HasErrors() bool {
	return g.NumErrors() > 0
}
