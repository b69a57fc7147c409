package driver

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"fregec/internal/diag"
	"fregec/internal/orchestrator"
	"fregec/internal/resolve"
	"fregec/internal/state"
)

// Extension is the fregec source-file suffix (§4.1), the original ".fr".
const Extension = ".fr"

// RunOptions bundles everything the entry point (C9) needs beyond what
// state.Options already carries: the resolver's raw positional
// arguments and the stream diagnostics/usage errors print to.
type RunOptions struct {
	state.Options
	Args   []string
	Stderr io.Writer
}

// Run implements C9: resolve inputs, dispatch to the make orchestrator
// or a fanned-out set of single-file drivers, and report whether every
// module finished with zero errors (INV-5).
func Run(ro RunOptions) bool {
	stderr := ro.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var resolveErrs diag.Sink
	items := resolve.Resolve(ro.Args, ro.Options.SourcePath, Extension, &resolveErrs)
	if !ro.Options.IdeMode {
		diag.Print(stderr, resolveErrs.Drain(), ro.Options.Color)
	}

	var ok bool
	var moduleMsgs []diag.Message
	if ro.Options.Make {
		jobs := ro.Options.Jobs
		if jobs <= 0 {
			jobs = runtime.GOMAXPROCS(0)
		}
		o := orchestrator.New(ro.Options, Extension, jobs)
		o.SetStderr(stderr)
		res := o.Run(items, &resolveErrs)
		moduleMsgs = o.Diagnostics()
		if !ro.Options.IdeMode {
			diag.Print(stderr, resolveErrs.Drain(), ro.Options.Color)
		}
		ok = res.Success && resolveErrs.NumErrors() == 0
	} else {
		var fanOutOK bool
		fanOutOK, moduleMsgs = runFanOut(ro.Options, items, stderr)
		ok = fanOutOK && resolveErrs.NumErrors() == 0
	}

	if ro.Options.IdeMode && ro.Options.IDEExportPath != "" {
		export := append(resolveErrs.Pending(), moduleMsgs...)
		if err := diag.ExportIDE(ro.Options.IDEExportPath, export); err != nil {
			fmt.Fprintf(stderr, "error: failed to export IDE diagnostics: %v\n", err)
			ok = false
		}
	}

	return ok
}

// runFanOut drives every FilePath item through its own SingleFile
// pipeline in parallel (§5: "the entry point may fan out across
// multiple files by running per-file drivers in parallel... no shared
// mutable state crosses drivers"). ModuleRef items are not compiled
// outside make mode; each one is reported as an error and fails the run.
func runFanOut(opts state.Options, items []resolve.Item, stderr io.Writer) (bool, []diag.Message) {
	var mu sync.Mutex
	lockedStderr := func() io.Writer { return &serializedWriter{mu: &mu, w: stderr} }

	eg := &errgroup.Group{}
	eg.SetLimit(runtime.GOMAXPROCS(0))

	var resultMu sync.Mutex
	allOK := true
	var msgs []diag.Message

	for _, item := range items {
		item := item
		if item.Kind != resolve.FilePath {
			mu.Lock()
			fmt.Fprintf(stderr, "error: %q requires --make to rebuild a module known only by name\n", item.ID)
			mu.Unlock()
			resultMu.Lock()
			allOK = false
			resultMu.Unlock()
			continue
		}
		eg.Go(func() error {
			moduleOpts := opts
			moduleOpts.Stderr = lockedStderr()
			g := SingleFile(moduleOpts, item.Path)
			resultMu.Lock()
			if !Succeeded(g) {
				allOK = false
			}
			msgs = append(msgs, g.Sub.Messages.Pending()...)
			resultMu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return allOK, msgs
}

type serializedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (s *serializedWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
