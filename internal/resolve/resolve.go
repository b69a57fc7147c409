// Package resolve implements the input resolver (C1): turning raw
// command-line positional arguments into an ordered sequence of input
// work items.
package resolve

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fregec/internal/diag"
	"fregec/internal/module"
)

// Kind distinguishes the two shapes a work item can take (§3).
type Kind uint8

const (
	// FilePath is a resolved path to a source file that must be parsed.
	FilePath Kind = iota
	// ModuleRef is a module known by name only, to be rebuilt if required.
	ModuleRef
)

// Item is a tagged input work item (§3).
type Item struct {
	Kind Kind
	Path string    // valid for FilePath, and for ModuleRef once located
	ID   module.ID // valid for ModuleRef
}

// Resolve implements §4.1. It preserves argument order and does not
// deduplicate. Errors are appended to errs (typically the driver's
// top-level diagnostics sink) with a null position, and the
// corresponding argument contributes no work item.
func Resolve(args []string, sourcePath []string, extension string, errs *diag.Sink) []Item {
	var items []Item
	for _, a := range args {
		items = append(items, resolveOne(a, sourcePath, extension, errs)...)
	}
	return items
}

func resolveOne(a string, sourcePath []string, extension string, errs *diag.Sink) []Item {
	info, statErr := os.Stat(a)
	if statErr == nil && info.Mode().IsRegular() {
		return []Item{{Kind: FilePath, Path: a}}
	}
	if statErr == nil && info.IsDir() {
		return resolveDir(a, extension)
	}

	if strings.HasSuffix(a, extension) {
		if filepath.IsAbs(a) {
			errs.Errorf("could not read %q", a)
			return nil
		}
		for _, dir := range sourcePath {
			candidate := filepath.Join(dir, a)
			if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
				return []Item{{Kind: FilePath, Path: candidate}}
			}
		}
		errs.Errorf("could not find %q in source path", a)
		return nil
	}

	id := module.Canonicalize(a)
	rel := id.PathSuffix() + extension
	for _, dir := range sourcePath {
		candidate := filepath.Join(dir, rel)
		if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
			return []Item{{Kind: ModuleRef, Path: candidate, ID: id}}
		}
	}
	errs.Errorf("could not find module %q in source path", a)
	return nil
}

// LocateModule searches sourcePath for id's source file, the same way
// resolveOne does for a bare module-name argument. The make
// orchestrator (internal/orchestrator) uses this to find dependency
// modules discovered only once their importer has been parsed.
func LocateModule(id module.ID, sourcePath []string, extension string) (string, bool) {
	rel := id.PathSuffix() + extension
	for _, dir := range sourcePath {
		candidate := filepath.Join(dir, rel)
		if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

func resolveDir(dir, extension string) []Item {
	var items []Item
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, extension) {
			return nil
		}
		if fi, statErr := os.Stat(path); statErr != nil || !fi.Mode().IsRegular() {
			return nil
		}
		items = append(items, Item{Kind: FilePath, Path: path})
		return nil
	})
	// The filesystem walk order is already deterministic on most
	// platforms; sorting costs little and makes RT-1 trivially true
	// for directory arguments without contradicting §4.1's "need not
	// sort" allowance.
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items
}
