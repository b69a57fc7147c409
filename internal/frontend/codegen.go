package frontend

import (
	"fmt"

	"fregec/internal/diag"
	"fregec/internal/printer"
	"fregec/internal/state"
)

// HostSuffix is the file extension used for generated host-language
// source files (§4.5 target-path formula).
const HostSuffix = ".java"

// OpenPrinter implements open-printer (§4.5). It is a method in shape
// only, kept as a plain function to match the Pass signature, closing
// over nothing beyond g.
func OpenPrinter(g *state.G) (string, int) {
	target := printer.TargetPath(g.Options.OutputDir, g.Sub.ThisPack.PathSuffix(), HostSuffix)
	sink, err := printer.Open(g.Options.Source, target)
	if err != nil {
		g.Sub.Messages.Add(diag.Message{Severity: diag.SevError, Text: err.Error()})
		return "files", 0
	}
	g.Gen.Printer = sink
	if !sink.IsStdout() {
		g.Gen.LastPath = target
	}
	return "files", 1
}

// GenHostCode implements gen-host-code: it writes a minimal but
// syntactically valid Java source stub naming the module's canonical
// package, since real host-code generation is out of scope (§1).
func GenHostCode(g *state.G) (string, int) {
	pkg := g.Sub.ThisPack.String()
	_, err := fmt.Fprintf(g.Gen.Printer, "// module %s\npublic final class %s {\n}\n", pkg, hostClassName(g.Sub.ThisPack.PathSuffix()))
	if err != nil {
		g.Sub.Messages.Add(diag.Message{Severity: diag.SevError, Text: err.Error()})
		return "definitions", 0
	}
	return "definitions", len(g.Sub.SourceDefs)
}

// ClosePrinter implements close-printer (§4.5): flush and close the
// sink, then replace it with stdout so later code never observes a
// closed file handle.
func ClosePrinter(g *state.G) (string, int) {
	err := g.Gen.Printer.Close()
	g.Gen.Printer = printer.Stdout()
	if err != nil {
		g.Sub.Messages.Add(diag.Message{Severity: diag.SevError, Text: err.Error()})
		return "files", 0
	}
	return "files", 1
}

func hostClassName(pathSuffix string) string {
	name := pathSuffix
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			name = name[i+1:]
			break
		}
	}
	if name == "" {
		return "Module"
	}
	return name
}
