package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromDirFindsManifestInParent(t *testing.T) {
	root := t.TempDir()
	manifest := "[build]\nsource-path = [\"src\"]\noutput-dir = \"build\"\nclasspath = [\"lib/a.jar\"]\njobs = 4\n"
	if err := os.WriteFile(filepath.Join(root, manifestName), []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadFromDir(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest to be found")
	}
	if len(m.Build.SourcePath) != 1 || m.Build.SourcePath[0] != "src" {
		t.Fatalf("unexpected source-path: %+v", m.Build.SourcePath)
	}
	if m.Build.OutputDir != "build" {
		t.Fatalf("unexpected output-dir: %q", m.Build.OutputDir)
	}
	if m.Build.Jobs != 4 {
		t.Fatalf("unexpected jobs: %d", m.Build.Jobs)
	}
}

func TestLoadFromDirNoManifestIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no manifest to be found")
	}
}
