package version

import "testing"

func TestVersionHasDefaultValue(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersionOverridableAtBuildTime(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	if Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", Version, "1.2.3")
	}
}

func TestOptionalFieldsCanBeEmpty(t *testing.T) {
	if GitCommit != "" {
		t.Errorf("GitCommit should default to empty, got %q", GitCommit)
	}
	if BuildDate != "" {
		t.Errorf("BuildDate should default to empty, got %q", BuildDate)
	}
}
