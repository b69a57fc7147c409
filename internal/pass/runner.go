package pass

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fregec/internal/diag"
	"fregec/internal/state"
)

// descColumn is the padded width of a pass description in verbose
// timing lines (§4.3).
const descColumn = 40

// Run executes one pass over g (C3):
//   - skipped entirely (no timing recorded) if g already has errors (I2);
//   - timed at millisecond granularity;
//   - its diagnostics are printed and drained immediately unless IdeMode
//     is set, in which case they accumulate for later retrieval;
//   - if the pass raised new errors, the printer sink is force-closed;
//   - if Verbose and the pass has a non-empty description, a single
//     timing/throughput line is written to g.Stderr.
func Run(p Pass, g *state.G) {
	if g.HasErrors() {
		return
	}

	errorsBefore := g.NumErrors()
	start := time.Now()
	kind, count := p.Run(g)
	elapsed := time.Since(start)

	if !g.Options.IdeMode {
		msgs := g.Sub.Messages.Drain()
		diag.Print(g.Stderr, msgs, g.Options.Color)
	}

	if g.NumErrors() > errorsBefore {
		_ = g.Gen.Printer.Close()
	}

	if g.Options.Verbose && p.Description != "" {
		writeTimingLine(g.Stderr, g.Options.Color, p.Description, elapsed, kind, count)
	}
}

func writeTimingLine(w io.Writer, colorEnabled bool, description string, elapsed time.Duration, kind string, count int) {
	elapsedMS := elapsed.Milliseconds()
	divisor := elapsedMS + 1
	rate := int64(count) * 1000 / divisor

	desc := runewidth.FillRight(description, descColumn)
	line := fmt.Sprintf("%s  took  %.3fs, %d %s (%d %s/s)", desc, elapsed.Seconds(), count, kind, rate, kind)
	if colorEnabled {
		line = color.New(color.FgHiBlack).Sprint(line)
	}
	fmt.Fprintln(w, line)
}
