package frontend

import "fregec/internal/state"

// The following functions are no-op stand-ins for the semantic passes
// spec.md §1 places out of scope: import resolution, instance/class
// verification, name resolution, type checking, and the simplification/
// strictness passes that would normally run on a real AST. Each merely
// reports its item kind/count against the current definition list so
// the pass runner's timing and throughput reporting (§4.3) has
// something real to measure, and so IDE/verbose mode output looks like
// a real pipeline when driving this module against the make orchestrator
// and single-file driver.

func countDefs(g *state.G, kind string) (string, int) {
	return kind, len(g.Sub.SourceDefs)
}

func JoinDefinitions(g *state.G) (string, int)      { return countDefs(g, "definitions") }
func ImportPackages(g *state.G) (string, int)       { return countDefs(g, "imports") }
func VerifyImportedInstances(g *state.G) (string, int) { return countDefs(g, "instances") }
func EnterDefinitions(g *state.G) (string, int)     { return countDefs(g, "definitions") }
func FieldDefinitions(g *state.G) (string, int)     { return countDefs(g, "fields") }
func TypeAliases(g *state.G) (string, int)          { return countDefs(g, "aliases") }
func DeriveInstances(g *state.G) (string, int)      { return countDefs(g, "instances") }
func ResolveNames(g *state.G) (string, int)         { return countDefs(g, "names") }
func VerifyClassDefs(g *state.G) (string, int)      { return countDefs(g, "classes") }
func VerifyOwnInstances(g *state.G) (string, int)   { return countDefs(g, "instances") }
func SimplifyLets(g *state.G) (string, int)         { return countDefs(g, "lets") }
func TypeCheck(g *state.G) (string, int)            { return countDefs(g, "definitions") }
func SimplifyExpressions(g *state.G) (string, int)  { return countDefs(g, "expressions") }
func GlobalizeLambdas(g *state.G) (string, int)     { return countDefs(g, "lambdas") }
func StrictnessAnalysis(g *state.G) (string, int)   { return countDefs(g, "definitions") }
func GenMetadata(g *state.G) (string, int)          { return countDefs(g, "definitions") }

// CleanSymbolTable drops the per-module artefacts that are no longer
// needed once code generation has completed, leaving Messages (still
// owned by the caller for final reporting) and ThisPack untouched.
func CleanSymbolTable(g *state.G) (string, int) {
	n := len(g.Sub.SourceDefs)
	g.Sub.Tokens = nil
	g.Sub.SourceDefs = nil
	return "definitions", n
}
