package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"fregec/internal/state"
)

func writeSrc(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRunSingleFileModeSucceeds(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(src, "Hello.fr")
	writeSrc(t, path, "module Hello\n")

	var stderr bytes.Buffer
	ok := Run(RunOptions{
		Options: state.Options{OutputDir: out},
		Args:    []string{path},
		Stderr:  &stderr,
	})
	if !ok {
		t.Fatalf("expected success, stderr=%s", stderr.String())
	}
}

func TestRunMissingFileFails(t *testing.T) {
	var stderr bytes.Buffer
	ok := Run(RunOptions{
		Options: state.Options{OutputDir: t.TempDir()},
		Args:    []string{filepath.Join(t.TempDir(), "Nope.fr")},
		Stderr:  &stderr,
	})
	if ok {
		t.Fatal("expected failure for a missing input file")
	}
	if stderr.Len() == 0 {
		t.Fatal("expected a diagnostic on stderr")
	}
}

func TestRunMakeModeBuildsTransitiveDependencies(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSrc(t, filepath.Join(src, "Bottom.fr"), "module Bottom\n")
	writeSrc(t, filepath.Join(src, "Top.fr"), "module Top\nimport Bottom\n")

	var stderr bytes.Buffer
	ok := Run(RunOptions{
		Options: state.Options{Make: true, OutputDir: out, SourcePath: []string{src}},
		Args:    []string{"Top"},
		Stderr:  &stderr,
	})
	if !ok {
		t.Fatalf("expected success, stderr=%s", stderr.String())
	}
}

func TestRunIDEModeExportsDiagnostics(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "diagnostics.msgpack")

	var stderr bytes.Buffer
	ok := Run(RunOptions{
		Options: state.Options{
			OutputDir:     t.TempDir(),
			IdeMode:       true,
			IDEExportPath: exportPath,
		},
		Args:   []string{filepath.Join(t.TempDir(), "Nope.fr")},
		Stderr: &stderr,
	})
	if ok {
		t.Fatal("expected failure for a missing input file")
	}
	if stderr.Len() != 0 {
		t.Fatalf("IDE mode must not print diagnostics to stderr, got %q", stderr.String())
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("expected export file at %s: %v", exportPath, err)
	}
	var recs []map[string]any
	if err := msgpack.Unmarshal(data, &recs); err != nil {
		t.Fatalf("export file did not decode as msgpack: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected at least one exported diagnostic")
	}
}

func TestRunSingleFileModeRejectsBareModuleName(t *testing.T) {
	src := t.TempDir()
	writeSrc(t, filepath.Join(src, "Hello.fr"), "module Hello\n")

	var stderr bytes.Buffer
	ok := Run(RunOptions{
		Options: state.Options{OutputDir: t.TempDir(), SourcePath: []string{src}},
		Args:    []string{"Hello"},
		Stderr:  &stderr,
	})
	if ok {
		t.Fatal("expected failure: bare module name needs --make")
	}
}
