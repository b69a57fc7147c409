package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"fregec/internal/diag"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestResolveRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Hello.fr")
	writeFile(t, path, "module Hello\n")

	var sink diag.Sink
	items := Resolve([]string{path}, nil, ".fr", &sink)
	if sink.NumErrors() != 0 {
		t.Fatalf("unexpected errors: %v", sink.Pending())
	}
	if len(items) != 1 || items[0].Kind != FilePath || items[0].Path != path {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestResolveModuleNameFromSourcePath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "A", "B", "C.fr"), "module A.B.C\n")

	var sink diag.Sink
	items := Resolve([]string{"A.B.C"}, []string{src}, ".fr", &sink)
	if sink.NumErrors() != 0 {
		t.Fatalf("unexpected errors: %v", sink.Pending())
	}
	if len(items) != 1 || items[0].Kind != ModuleRef || items[0].ID != "A.B.C" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestResolveAbsoluteSourcePathIsAnError(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "Abs.fr")

	var sink diag.Sink
	items := Resolve([]string{abs}, nil, ".fr", &sink)
	if len(items) != 0 {
		t.Fatalf("expected no work items, got %+v", items)
	}
	if sink.NumErrors() != 1 {
		t.Fatalf("expected one error, got %d", sink.NumErrors())
	}
}

func TestResolveMissingModuleIsAnError(t *testing.T) {
	var sink diag.Sink
	items := Resolve([]string{"Nope.Nowhere"}, []string{t.TempDir()}, ".fr", &sink)
	if len(items) != 0 {
		t.Fatalf("expected no work items, got %+v", items)
	}
	if sink.NumErrors() != 1 {
		t.Fatalf("expected one error, got %d", sink.NumErrors())
	}
}

func TestResolveDirectoryWalksRecursively(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.fr"), "module A\n")
	writeFile(t, filepath.Join(dir, "nested", "B.fr"), "module B\n")
	writeFile(t, filepath.Join(dir, "ignore.txt"), "not a source file\n")

	var sink diag.Sink
	items := Resolve([]string{dir}, nil, ".fr", &sink)
	if sink.NumErrors() != 0 {
		t.Fatalf("unexpected errors: %v", sink.Pending())
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 files, got %+v", items)
	}
}

func TestResolveEmptyDirectoryIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	var sink diag.Sink
	items := Resolve([]string{dir}, nil, ".fr", &sink)
	if sink.NumErrors() != 0 {
		t.Fatalf("unexpected errors: %v", sink.Pending())
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %+v", items)
	}
}
