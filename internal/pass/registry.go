package pass

import "fregec/internal/frontend"

// FullList is the fixed, ordered registry of all 23 pipeline stages
// (§4.2). Order must never change: the make-mode list is derived from
// it by exclusion, not by re-specifying stages.
func FullList() []Pass {
	return []Pass{
		{"lexer", "lexer", frontend.Lexer},
		{"parser", "parser", frontend.Parser},
		{"join-definitions", "join definitions", frontend.JoinDefinitions},
		{"import-packages", "import packages", frontend.ImportPackages},
		{"verify-imported-instances", "verify imported instances", frontend.VerifyImportedInstances},
		{"enter-definitions", "enter definitions", frontend.EnterDefinitions},
		{"field-definitions", "field definitions", frontend.FieldDefinitions},
		{"type-aliases", "type aliases", frontend.TypeAliases},
		{"derive-instances", "derive instances", frontend.DeriveInstances},
		{"resolve-names", "resolve names", frontend.ResolveNames},
		{"verify-class-defs", "verify class definitions", frontend.VerifyClassDefs},
		{"verify-own-instances", "verify own instances", frontend.VerifyOwnInstances},
		{"simplify-lets", "simplify lets", frontend.SimplifyLets},
		{"type-check", "type check", frontend.TypeCheck},
		{"simplify-expressions", "simplify expressions", frontend.SimplifyExpressions},
		{"globalize-lambdas", "globalize lambdas", frontend.GlobalizeLambdas},
		{"strictness-analysis", "strictness analysis", frontend.StrictnessAnalysis},
		{"open-printer", "", frontend.OpenPrinter},
		{"gen-metadata", "generate metadata", frontend.GenMetadata},
		{"gen-host-code", "generate host code", frontend.GenHostCode},
		{"close-printer", "", frontend.ClosePrinter},
		{"run-host-compiler", "run host compiler", frontend.RunHostCompiler},
		{"clean-symbol-table", "clean symbol table", frontend.CleanSymbolTable},
	}
}

// excludedFromMake lists the passes make mode handles specially:
// lexer/parser run up front over every root (§4.7 step 2), and the
// host compiler is batched once at the end of the whole build rather
// than per module (§4.2, decided in SPEC_FULL.md).
var excludedFromMake = map[string]bool{
	"lexer":             true,
	"parser":            true,
	"run-host-compiler": true,
}

// MakeModeList returns FullList with the lexer, parser, and
// run-host-compiler passes removed (§4.2).
func MakeModeList() []Pass {
	full := FullList()
	out := make([]Pass, 0, len(full))
	for _, p := range full {
		if excludedFromMake[p.Name] {
			continue
		}
		out = append(out, p)
	}
	return out
}
