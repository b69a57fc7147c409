package orchestrator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fregec/internal/diag"
	"fregec/internal/resolve"
	"fregec/internal/state"
)

func writeModule(t *testing.T, dir, relPath, body string) {
	t.Helper()
	full := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func baseOpts(t *testing.T, src, out string) state.Options {
	t.Helper()
	return state.Options{
		Make:       true,
		OutputDir:  out,
		SourcePath: []string{src},
	}
}

// Bottom imports nothing, Mid imports Bottom, Top imports Mid. Running
// make mode on just "Top" (a bare module name) must transitively locate
// and build Mid and Bottom too (§8 worked example).
func TestOrchestratorBuildsTransitiveDependencies(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeModule(t, src, "Bottom.fr", "module Bottom\n")
	writeModule(t, src, "Mid.fr", "module Mid\nimport Bottom\n")
	writeModule(t, src, "Top.fr", "module Top\nimport Mid\n")

	opts := baseOpts(t, src, out)
	var errs diag.Sink
	items := resolve.Resolve([]string{"Top"}, opts.SourcePath, ".fr", &errs)
	if errs.NumErrors() != 0 {
		t.Fatalf("resolve errors: %v", errs.Pending())
	}

	o := New(opts, ".fr", 2)
	var stderr bytes.Buffer
	o.SetStderr(&stderr)
	res := o.Run(items, &errs)

	if !res.Success {
		t.Fatalf("expected success, got errors: %v stderr=%s", errs.Pending(), stderr.String())
	}
	if len(res.EmittedFiles) != 3 {
		t.Fatalf("expected 3 emitted files, got %+v", res.EmittedFiles)
	}
}

// Diamond: Top imports Left and Right, both import Bottom. Bottom must
// not be built twice and the run must still succeed.
func TestOrchestratorDiamondDependency(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeModule(t, src, "Bottom.fr", "module Bottom\n")
	writeModule(t, src, "Left.fr", "module Left\nimport Bottom\n")
	writeModule(t, src, "Right.fr", "module Right\nimport Bottom\n")
	writeModule(t, src, "Top.fr", "module Top\nimport Left\nimport Right\n")

	opts := baseOpts(t, src, out)
	var errs diag.Sink
	items := resolve.Resolve([]string{filepath.Join(src, "Top.fr")}, opts.SourcePath, ".fr", &errs)
	if errs.NumErrors() != 0 {
		t.Fatalf("resolve errors: %v", errs.Pending())
	}

	o := New(opts, ".fr", 4)
	res := o.Run(items, &errs)

	if !res.Success {
		t.Fatalf("expected success, got errors: %v", errs.Pending())
	}
	if len(res.EmittedFiles) != 4 {
		t.Fatalf("expected 4 emitted files, got %+v", res.EmittedFiles)
	}
}

// A module that imports another module which genuinely does not exist
// anywhere on the source path is satisfied by absence (INV-3): the
// importer still builds successfully.
func TestOrchestratorAbsentDependencyIsSatisfiedByAbsence(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeModule(t, src, "Solo.fr", "module Solo\nimport Nowhere.AtAll\n")

	opts := baseOpts(t, src, out)
	var errs diag.Sink
	items := resolve.Resolve([]string{filepath.Join(src, "Solo.fr")}, opts.SourcePath, ".fr", &errs)

	o := New(opts, ".fr", 1)
	res := o.Run(items, &errs)

	if !res.Success {
		t.Fatalf("expected success, got errors: %v", errs.Pending())
	}
	if len(res.EmittedFiles) != 1 {
		t.Fatalf("expected 1 emitted file, got %+v", res.EmittedFiles)
	}
}

// A and B import each other directly: an import cycle. The run must
// terminate (not deadlock) and report failure for both modules.
func TestOrchestratorDetectsImportCycle(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeModule(t, src, "A.fr", "module A\nimport B\n")
	writeModule(t, src, "B.fr", "module B\nimport A\n")

	opts := baseOpts(t, src, out)
	var errs diag.Sink
	items := resolve.Resolve([]string{filepath.Join(src, "A.fr")}, opts.SourcePath, ".fr", &errs)

	o := New(opts, ".fr", 2)
	var stderr bytes.Buffer
	o.SetStderr(&stderr)
	res := o.Run(items, &errs)

	if res.Success {
		t.Fatalf("expected failure for a cyclic build")
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected a cycle diagnostic on stderr")
	}
}

// Single worker slot (jobs=1) must still make progress through a
// dependency chain: discovery and each topological batch only ever
// hold the semaphore around the parse/pass-list call itself, so a
// single slot is sufficient, just serialized.
func TestOrchestratorSingleWorkerDoesNotDeadlock(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeModule(t, src, "Bottom.fr", "module Bottom\n")
	writeModule(t, src, "Mid.fr", "module Mid\nimport Bottom\n")
	writeModule(t, src, "Top.fr", "module Top\nimport Mid\n")

	opts := baseOpts(t, src, out)
	var errs diag.Sink
	items := resolve.Resolve([]string{"Top"}, opts.SourcePath, ".fr", &errs)

	o := New(opts, ".fr", 1)
	done := make(chan Result, 1)
	go func() { done <- o.Run(items, &errs) }()

	select {
	case res := <-done:
		if !res.Success {
			t.Fatalf("expected success, got errors: %v", errs.Pending())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("orchestrator deadlocked with jobs=1")
	}
}
