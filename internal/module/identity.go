// Package module defines module identity: the canonical dotted name that
// uniquely identifies a source module (GLOSSARY), and the dependency
// graph built from it (see the dag subpackage).
package module

import "strings"

// ID is an opaque canonical key. Two dotted names denote the same
// module iff their IDs are equal (§3 "Module identity").
type ID string

// Canonicalize turns a dotted module name into its canonical ID. The
// driver trusts this equality for deduplication across the resolver,
// the todo mapping, and the dependency graph.
func Canonicalize(dottedName string) ID {
	return ID(strings.TrimSpace(dottedName))
}

// String returns the dotted name this ID was derived from.
func (id ID) String() string {
	return string(id)
}

// PathSuffix converts the dotted name to a slash-separated relative
// path, the form used both for locating a module's source file on the
// source path and for computing its output target path (§4.1, §4.5).
func (id ID) PathSuffix() string {
	return strings.ReplaceAll(string(id), ".", "/")
}
