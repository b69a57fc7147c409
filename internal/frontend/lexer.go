// Package frontend supplies minimal, working stand-ins for the passes
// spec.md §1 places out of scope as external collaborators: the lexer,
// parser, individual semantic passes, metadata emission, and host-code
// generation. Each function here satisfies the Pass contract (§6) well
// enough to drive the pipeline engine and the make orchestrator
// end-to-end; none of them implement real language semantics.
package frontend

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"fregec/internal/diag"
	"fregec/internal/source"
	"fregec/internal/state"
)

// Lexer reads the current input file and splits it into a whitespace
// token stream. A missing file is reported as a parse-stage error,
// matching the "input errors... abort before compilation" category
// (§7) for the single-file path (make mode locates files earlier, in
// the resolver).
func Lexer(g *state.G) (kind string, count int) {
	path := g.Options.Source
	if path == "-" || path == "" {
		g.Sub.Tokens = nil
		return "tokens", 0
	}

	f, err := os.Open(path) // #nosec G304 -- path comes from resolved command-line input
	if err != nil {
		g.Sub.Messages.Add(diag.Message{Severity: diag.SevError, Text: fmt.Sprintf("could not read %q: %v", path, err)})
		return "tokens", 0
	}
	defer f.Close()

	var tokens []source.Token
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		for _, word := range strings.Fields(scanner.Text()) {
			tokens = append(tokens, source.Token{Text: word, Pos: source.Pos{File: path, Line: line}})
		}
	}
	if err := scanner.Err(); err != nil {
		g.Sub.Messages.Add(diag.Message{Severity: diag.SevError, Text: fmt.Sprintf("could not read %q: %v", path, err)})
		return "tokens", len(tokens)
	}

	g.Sub.Tokens = tokens
	return "tokens", len(tokens)
}
