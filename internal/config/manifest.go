// Package config loads the optional fregec.toml project manifest: an
// upward directory search for a [build] table of default source-path,
// output-dir, classpath, and jobs settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const manifestName = "fregec.toml"

// Manifest mirrors fregec.toml's [build] table. Every field is a
// default that an explicit command-line flag overrides.
type Manifest struct {
	Build struct {
		SourcePath []string `toml:"source-path"`
		OutputDir  string   `toml:"output-dir"`
		ClassPath  []string `toml:"classpath"`
		Jobs       int      `toml:"jobs"`
	} `toml:"build"`
}

// FindManifest walks up from startDir looking for fregec.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a fregec.toml manifest at path.
func Load(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return m, nil
}

// LoadFromDir locates and parses fregec.toml starting at startDir. It
// returns an empty Manifest and ok=false, with no error, when no
// manifest is found - the driver falls back entirely to flag defaults.
func LoadFromDir(startDir string) (m Manifest, ok bool, err error) {
	path, found, err := FindManifest(startDir)
	if err != nil || !found {
		return Manifest{}, found, err
	}
	m, err = Load(path)
	if err != nil {
		return Manifest{}, true, err
	}
	return m, true, nil
}
