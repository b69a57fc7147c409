package orchestrator

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"fregec/internal/diag"
	"fregec/internal/driver"
	"fregec/internal/hostcompiler"
	"fregec/internal/module"
	"fregec/internal/module/dag"
	"fregec/internal/resolve"
	"fregec/internal/state"
)

// Orchestrator runs the make-mode build described in §4.7 in two
// stages. First, discovery: every command-line root is parsed, and any
// module it imports that is not already in the todo mapping is located
// and parsed in turn, recursively, until no unparsed CheckUpdate entry
// remains - a CheckUpdate module's own imports are simply unknown until
// it is parsed, so the full dependency graph cannot exist before this
// stage completes. Second, scheduling: the now-complete graph is handed
// to internal/module/dag, whose Kahn toposort both detects import
// cycles (reported and failed without being scheduled) and produces the
// batches of mutually-independent modules that compile in the pass-list
// stage, one batch at a time, each batch itself running concurrently
// under a bounded worker pool.
type Orchestrator struct {
	opts      state.Options
	extension string

	mu    sync.Mutex
	todo  map[module.ID]*entry
	order []module.ID // insertion order, for deterministic tie-breaking and final reporting

	sem chan struct{} // bounds concurrent parsing/pass-running (§4.7, decided Open Question)

	stderrMu *sync.Mutex // serializes writes across concurrent modules' Stderr (§5)
	stderr   io.Writer

	emittedMu sync.Mutex
	emitted   []string // generated .java paths, successful modules only

	events chan<- Event // optional progress sink, see SetEvents
}

// New builds an orchestrator for a single make-mode run. jobs caps how
// many modules may be mid-parse or mid-pass-list at once; zero or
// negative means runtime.GOMAXPROCS(0) (SPEC_FULL.md, decided Open
// Question).
func New(opts state.Options, extension string, jobs int) *Orchestrator {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	return &Orchestrator{
		opts:      opts,
		extension: extension,
		todo:      make(map[module.ID]*entry),
		sem:       make(chan struct{}, jobs),
		stderrMu:  &sync.Mutex{},
		stderr:    os.Stderr,
	}
}

// SetStderr redirects the orchestrator's output away from os.Stderr:
// its own import-cycle diagnostics and, through moduleOpts, every
// module's pass diagnostics and timing lines.
func (o *Orchestrator) SetStderr(w io.Writer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stderr = w
}

// Result summarizes one make-mode run (§4.7, §8).
type Result struct {
	Success      bool
	EmittedFiles []string // .java files successfully generated, sorted
	HostExitCode int      // 0 unless RunJavac and the batched invocation failed or returned non-zero
}

// Run executes the make-mode build over items, which the caller has
// already produced via internal/resolve. errs receives unidentifiable
// roots and host-compiler failures; import cycles are reported on the
// orchestrator's stderr, and an import that cannot be located is
// skipped without a diagnostic. Per-module pass diagnostics are printed
// to each module's own G.Stderr as they occur, exactly as in
// single-file mode.
func (o *Orchestrator) Run(items []resolve.Item, errs *diag.Sink) Result {
	for _, item := range items {
		switch item.Kind {
		case resolve.FilePath:
			o.registerRoot(item.Path, errs)
		case resolve.ModuleRef:
			o.insertCheckUpdate(item.ID, item.Path, "root")
		}
	}

	o.discoverAll()

	idx, graph := o.buildGraph()
	topo := dag.Toposort(graph)
	if topo.Cyclic {
		o.failCycles(idx, topo)
	}
	for _, batch := range topo.Batches {
		o.runBatch(batch, idx, graph)
	}

	return o.finalize(errs)
}

// registerRoot parses a FilePath root immediately (its source is
// already known), then registers it and its freshly-discovered
// dependencies into the todo mapping (§4.7 step 2). A root whose
// identity cannot be determined at all (no module declaration found)
// is reported to errs and otherwise dropped; a root that parses with
// some other error still gets an entry, so its failure is reflected in
// the final result instead of silently vanishing.
func (o *Orchestrator) registerRoot(path string, errs *diag.Sink) {
	o.acquire()
	g := driver.ParseOnly(o.moduleOpts(), path)
	o.release()

	id := g.Sub.ThisPack
	if id == "" {
		errs.Errorf("%s: could not determine module identity", path)
		return
	}
	o.insertCompileAfterDeps(id, g, path, "root")
	if g.HasErrors() {
		return
	}
	for _, dep := range g.Sub.Imports {
		o.registerImport(dep, fmt.Sprintf("imported by %s", id))
	}
}

// registerImport adds dep to the todo mapping if its source exists
// somewhere on the source path, and does nothing otherwise: an import
// that cannot be located anywhere is absent, not broken (INV-3, and
// per §8's worked example - a reference to a module nobody is building
// from source is satisfied by its absence, not a build failure).
func (o *Orchestrator) registerImport(dep module.ID, reason string) {
	o.mu.Lock()
	_, known := o.todo[dep]
	o.mu.Unlock()
	if known {
		return
	}
	path, ok := resolve.LocateModule(dep, o.opts.SourcePath, o.extension)
	if !ok {
		return
	}
	o.insertCheckUpdate(dep, path, reason)
}

// insertCompileAfterDeps always wins: a module whose source is already
// in hand is never downgraded back to CheckUpdate (§3).
func (o *Orchestrator) insertCompileAfterDeps(id module.ID, g *state.G, path, reason string) {
	o.mu.Lock()
	e, ok := o.todo[id]
	isNew := !ok
	if isNew {
		e = newEntry(CompileAfterDeps, id, "", reason)
		o.todo[id] = e
		o.order = append(o.order, id)
	}
	e.kind = CompileAfterDeps
	e.g = g
	e.path = path
	o.mu.Unlock()

	if isNew {
		o.emit(id, StatusQueued)
	}
}

// insertCheckUpdate inserts a CheckUpdate row unless the key already
// holds a CompileAfterDeps entry, which must never be overwritten (§3).
func (o *Orchestrator) insertCheckUpdate(id module.ID, path, reason string) {
	o.mu.Lock()
	if e, ok := o.todo[id]; ok {
		if e.kind != CompileAfterDeps && path != "" {
			e.path = path
		}
		o.mu.Unlock()
		return
	}
	e := newEntry(CheckUpdate, id, path, reason)
	o.todo[id] = e
	o.order = append(o.order, id)
	o.mu.Unlock()

	o.emit(id, StatusQueued)
}

// discoverAll repeatedly parses every CheckUpdate entry that has not
// yet been parsed, in concurrent rounds bounded by the parse/pass
// semaphore, registering each one's own locatable imports as fresh
// CheckUpdate rows. A round that parses no new entries ends discovery:
// the todo mapping, and therefore the dependency graph built from it,
// is now complete. Every CheckUpdate entry already carries a confirmed
// source path by the time it is inserted (registerImport only inserts
// what it found on the source path), so this stage never needs to
// re-locate anything, only parse.
func (o *Orchestrator) discoverAll() {
	for {
		pending := o.unparsedCheckUpdates()
		if len(pending) == 0 {
			return
		}
		var eg errgroup.Group
		for _, e := range pending {
			e := e
			eg.Go(func() error {
				o.discoverOne(e)
				return nil
			})
		}
		_ = eg.Wait()
	}
}

func (o *Orchestrator) unparsedCheckUpdates() []*entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	var pending []*entry
	for _, id := range o.order {
		e := o.todo[id]
		if e.kind == CheckUpdate && e.g == nil {
			pending = append(pending, e)
		}
	}
	return pending
}

// discoverOne parses a single CheckUpdate entry's already-known source
// path and registers its imports as further CheckUpdate rows.
func (o *Orchestrator) discoverOne(e *entry) {
	o.acquire()
	g := driver.ParseOnly(o.moduleOpts(), e.path)
	o.release()

	o.mu.Lock()
	e.g = g
	o.mu.Unlock()

	if g.HasErrors() {
		return
	}
	for _, dep := range g.Sub.Imports {
		o.registerImport(dep, fmt.Sprintf("imported by %s", e.id))
	}
}

// buildGraph turns the now-complete todo mapping into a dag.Graph: one
// node per entry, one edge per import that resolved to another entry.
// An import that was never registered as anyone's dependency - because
// registerImport could not locate it - is absent from the graph
// entirely, satisfied by absence per INV-3.
func (o *Orchestrator) buildGraph() (dag.Index, dag.Graph) {
	o.mu.Lock()
	metas := make([]dag.Meta, 0, len(o.order))
	for _, id := range o.order {
		e := o.todo[id]
		var imports []module.ID
		if e.g != nil {
			imports = e.g.Sub.Imports
		}
		metas = append(metas, dag.Meta{ID: id, Imports: imports})
	}
	o.mu.Unlock()

	idx := dag.BuildIndex(metas)
	return idx, dag.Build(idx, metas)
}

// failCycles marks every module the toposort could not order as failed,
// reporting each one once. These nodes are absent from topo.Batches, so
// they are never handed to runBatch.
func (o *Orchestrator) failCycles(idx dag.Index, topo dag.Topo) {
	for _, nodeID := range topo.Cycles {
		id := idx.IDToName[nodeID]
		o.mu.Lock()
		e, ok := o.todo[id]
		o.mu.Unlock()
		if !ok {
			continue
		}
		fmt.Fprintf(o.lockedStderr(), "error: module %q participates in an import cycle (%s)\n", id, e.reason)
		o.finishEntry(e, false)
	}
}

// runBatch runs every module in one topological wave concurrently; by
// construction no two entries in the same batch depend on each other.
func (o *Orchestrator) runBatch(batch []dag.NodeID, idx dag.Index, graph dag.Graph) {
	var eg errgroup.Group
	for _, nodeID := range batch {
		nodeID := nodeID
		id := idx.IDToName[nodeID]
		o.mu.Lock()
		e := o.todo[id]
		o.mu.Unlock()
		eg.Go(func() error {
			o.runEntry(e, nodeID, idx, graph)
			return nil
		})
	}
	_ = eg.Wait()
}

// runEntry runs one module's make-mode pass list, unless one of its
// (present) dependencies already failed - in which case it fails
// without being scheduled, matching how a cycle participant is
// handled. By the time any batch runs, discoverAll has already parsed
// every entry, so e.g is always set here.
func (o *Orchestrator) runEntry(e *entry, nodeID dag.NodeID, idx dag.Index, graph dag.Graph) {
	for _, depNode := range graph.Edges[nodeID] {
		depID := idx.IDToName[depNode]
		o.mu.Lock()
		dep := o.todo[depID]
		o.mu.Unlock()
		if dep != nil && !dep.success {
			o.finishEntry(e, false)
			return
		}
	}

	o.emit(e.id, StatusWorking)
	o.acquire()
	driver.RunMakeModePasses(e.g)
	o.release()

	success := e.g.NumErrors() == 0
	if success && e.g.Gen.LastPath != "" {
		o.emittedMu.Lock()
		o.emitted = append(o.emitted, e.g.Gen.LastPath)
		o.emittedMu.Unlock()
	}
	o.finishEntry(e, success)
}

// finishEntry records e's outcome and reports it to the progress sink.
// Each entry reaches exactly one of runEntry or failCycles, never both,
// so no synchronization beyond the todo-map mutex is needed here.
func (o *Orchestrator) finishEntry(e *entry, success bool) {
	o.mu.Lock()
	e.success = success
	o.mu.Unlock()

	status := StatusDone
	if !success {
		status = StatusError
	}
	o.emit(e.id, status)
}

func (o *Orchestrator) acquire() { o.sem <- struct{}{} }
func (o *Orchestrator) release() { <-o.sem }

func (o *Orchestrator) lockedStderr() io.Writer {
	o.mu.Lock()
	w := o.stderr
	o.mu.Unlock()
	return &mutexWriter{mu: o.stderrMu, w: w}
}

// moduleOpts returns the per-module Options used to parse and compile
// one module, routed through the orchestrator's mutex-serialized
// stderr so concurrent modules' diagnostics and timing lines don't
// interleave mid-line (§5).
func (o *Orchestrator) moduleOpts() state.Options {
	opts := o.opts
	opts.Stderr = o.lockedStderr()
	return opts
}

type mutexWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (m *mutexWriter) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.w.Write(p)
}

// Diagnostics returns every todo entry's retained diagnostics, in
// insertion order. Only non-empty in IDE mode: pass.Run drains and
// prints a module's messages immediately otherwise, leaving nothing
// queued by the time a batch finishes.
func (o *Orchestrator) Diagnostics() []diag.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	var msgs []diag.Message
	for _, id := range o.order {
		e := o.todo[id]
		if e.g != nil {
			msgs = append(msgs, e.g.Sub.Messages.Pending()...)
		}
	}
	return msgs
}

// finalize computes overall success and, if RunJavac is set, invokes
// the host compiler exactly once over every successfully emitted file
// (SPEC_FULL.md, decided Open Question).
func (o *Orchestrator) finalize(errs *diag.Sink) Result {
	o.mu.Lock()
	allOK := errs.NumErrors() == 0
	for _, id := range o.order {
		e := o.todo[id]
		if !e.success {
			allOK = false
		}
	}
	emitted := append([]string(nil), o.emitted...)
	o.mu.Unlock()
	sort.Strings(emitted)

	res := Result{Success: allOK, EmittedFiles: emitted}
	if !o.opts.RunJavac || len(emitted) == 0 {
		return res
	}

	exitCode, err := hostcompiler.Run(hostcompiler.Request{
		ClassPath:     o.opts.ClassPath,
		OutputDir:     o.opts.OutputDir,
		SourcePath:    o.opts.SourcePath,
		Targets:       emitted,
		PrintCommands: o.opts.PrintCommands,
	})
	if err != nil {
		errs.Errorf("failed to run host compiler: %v", err)
		res.Success = false
		return res
	}
	res.HostExitCode = exitCode
	if exitCode != 0 {
		errs.Errorf("java compiler errors; this usually indicates incorrect native declarations")
		res.Success = false
	}
	return res
}
