// Package printer manages the host-source output sink for a module
// (C5). It models the sink as an explicit Sink variant rather
// than using standard output as a silent "no file" sentinel (spec §9
// Design Notes, "Printer sink replacement").
package printer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Banner is written as the first line of every generated file, mirroring
// javac-targeted generators that stamp their own version into output.
const Banner = "// generated by fregec\n"

// Sink is an open host-source output destination: either a file or
// standard output.
type Sink struct {
	w        io.Writer
	closer   io.Closer // nil for stdout
	path     string    // empty for stdout
	isStdout bool
}

// Stdout returns a Sink that writes to standard output, the sentinel
// "no file" sink, used when a module's source is "-" (§4.5, RT boundary
// "source name \"-\" routes emission to standard output").
func Stdout() Sink {
	return Sink{w: os.Stdout, isStdout: true}
}

// IsStdout reports whether this sink writes to standard output.
func (s Sink) IsStdout() bool { return s.isStdout }

// Path returns the target file path, or "" for stdout.
func (s Sink) Path() string { return s.path }

// Write implements io.Writer.
func (s Sink) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, fmt.Errorf("printer: write to unopened sink")
	}
	return s.w.Write(p)
}

// Close flushes and closes the sink. Closing stdout is a no-op.
func (s Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// TargetPath computes the output file path for a module: a total
// function of (outputDir, moduleID.PathSuffix()+suffix) per invariant
// INV-4.
func TargetPath(outputDir, pathSuffix, suffix string) string {
	return filepath.Join(outputDir, filepath.FromSlash(pathSuffix)+suffix)
}

// Open implements open-printer (§4.5): if source is "-", write the
// version banner to standard output and return the standard-output
// sink; the banner is written on every such call. Otherwise create
// parent directories and open a UTF-8-encoded file at target, writing
// the version banner immediately.
func Open(source, target string) (Sink, error) {
	if source == "-" {
		sink := Stdout()
		if _, err := io.WriteString(sink, Banner); err != nil {
			return Sink{}, err
		}
		return sink, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return Sink{}, fmt.Errorf("printer: failed to create output dir: %w", err)
	}
	// #nosec G304 -- target is derived from module identity and the configured output dir
	f, err := os.Create(target)
	if err != nil {
		return Sink{}, fmt.Errorf("printer: failed to open %q: %w", target, err)
	}

	enc := unicode.UTF8.NewEncoder()
	w := transform.NewWriter(f, enc)
	sink := Sink{w: w, closer: multiCloser{w, f}, path: target}
	if _, err := io.WriteString(sink, Banner); err != nil {
		_ = sink.Close()
		return Sink{}, err
	}
	return sink, nil
}

// multiCloser closes the transform writer (flushing buffered encoder
// state) before closing the underlying file.
type multiCloser struct {
	w io.Writer
	f *os.File
}

func (m multiCloser) Close() error {
	if tw, ok := m.w.(*transform.Writer); ok {
		if err := tw.Close(); err != nil {
			_ = m.f.Close()
			return err
		}
	}
	return m.f.Close()
}
