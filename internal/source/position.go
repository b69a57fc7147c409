// Package source describes where in an input file a diagnostic or token
// originates.
package source

import "fmt"

// Pos is a source location. A zero Pos is the "null position" used for
// diagnostics that are not tied to a specific file (unresolved module
// names, missing files).
type Pos struct {
	File string
	Line int
	Col  int
}

// IsNull reports whether p carries no location information.
func (p Pos) IsNull() bool {
	return p.File == "" && p.Line == 0 && p.Col == 0
}

// Token is a minimal lexical token: text plus the position it came
// from. The real lexer's token kinds are out of scope (spec §1); the
// driver only needs enough to locate diagnostics and detect module/
// import keywords for dependency extraction.
type Token struct {
	Text string
	Pos  Pos
}

func (p Pos) String() string {
	if p.IsNull() {
		return "<no position>"
	}
	if p.Line == 0 {
		return p.File
	}
	if p.Col == 0 {
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}
