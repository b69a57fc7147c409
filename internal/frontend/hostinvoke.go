package frontend

import (
	"fmt"

	"fregec/internal/diag"
	"fregec/internal/hostcompiler"
	"fregec/internal/state"
)

// RunHostCompiler implements pass 22 for the single-file pipeline: it
// only runs (meaningfully) when RunJavac is set, and only on the one
// file this module emitted. Make mode removes this pass from its
// per-module list and instead batches the host compiler once over the
// whole build (§4.2, §4.7, SPEC_FULL.md's decided Open Question).
func RunHostCompiler(g *state.G) (string, int) {
	if !g.Options.RunJavac || g.Gen.LastPath == "" {
		return "files", 0
	}
	exitCode, err := hostcompiler.Run(hostcompiler.Request{
		ClassPath:  g.Options.ClassPath,
		OutputDir:  g.Options.OutputDir,
		SourcePath: g.Options.SourcePath,
		Targets:    []string{g.Gen.LastPath},
	})
	if err != nil {
		g.Sub.Messages.Add(diag.Message{Severity: diag.SevError, Text: fmt.Sprintf("failed to run host compiler: %v", err)})
		return "files", 0
	}
	if exitCode != 0 {
		g.Sub.Messages.Add(diag.Message{
			Severity: diag.SevError,
			Text:     "java compiler errors; this usually indicates incorrect native declarations",
		})
	}
	return "files", 1
}
