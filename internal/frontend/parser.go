package frontend

import (
	"fmt"

	"fregec/internal/diag"
	"fregec/internal/module"
	"fregec/internal/state"
)

// Parser consumes g.Sub.Tokens and produces g.Sub.SourceDefs plus the
// module's identity (ThisPack) and its declared imports. The toy
// grammar recognised is:
//
//	module <dotted-name>
//	import <dotted-name>
//
// every other token is treated as a one-token top-level definition.
// "module" must appear exactly once with a following name token, or a
// parse error is reported at the offending token's position (§6,
// "after running both [lexer and parser], the state must expose
// sub.thisPack... or report a parse error").
func Parser(g *state.G) (kind string, count int) {
	var (
		defs     []string
		imports  []module.ID
		thisPack module.ID
	)

	tokens := g.Sub.Tokens
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Text {
		case "module":
			if i+1 >= len(tokens) {
				g.Sub.Messages.Add(diag.Message{
					Severity: diag.SevError,
					Pos:      tok.Pos,
					Text:     "expected module name after 'module'",
				})
				i = len(tokens)
				continue
			}
			if thisPack != "" {
				g.Sub.Messages.Add(diag.Message{
					Severity: diag.SevError,
					Pos:      tok.Pos,
					Text:     fmt.Sprintf("duplicate module declaration (already %q)", thisPack),
				})
			}
			thisPack = module.Canonicalize(tokens[i+1].Text)
			i++
		case "import":
			if i+1 >= len(tokens) {
				g.Sub.Messages.Add(diag.Message{
					Severity: diag.SevError,
					Pos:      tok.Pos,
					Text:     "expected module name after 'import'",
				})
				i = len(tokens)
				continue
			}
			imports = append(imports, module.Canonicalize(tokens[i+1].Text))
			i++
		default:
			defs = append(defs, tok.Text)
		}
	}

	if thisPack == "" && !g.HasErrors() {
		var pos diag.Message
		if len(tokens) > 0 {
			pos = diag.Message{Severity: diag.SevError, Pos: tokens[0].Pos, Text: "no module declaration found"}
		} else {
			pos = diag.Message{Severity: diag.SevError, Text: "no module declaration found"}
		}
		g.Sub.Messages.Add(pos)
	}

	g.Sub.ThisPack = thisPack
	g.Sub.Imports = imports
	g.Sub.SourceDefs = defs
	return "definitions", len(defs)
}
