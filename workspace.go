// Package workbench simulates a compilation environment without touching
// the real filesystem. Named locations are overlaid with one or more
// backing containers, output locations allocate writable containers
// lazily, and every diagnostic a hosted compilation reports is captured
// with enough metadata to assert precisely why a build failed.
//
// All state is scoped to a single workspace lifetime and is typically
// discarded after one test.
package workbench

import (
	"context"
	"sync"

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
	"github.com/compiletest/workbench/fuzzy"
	"github.com/compiletest/workbench/group"
	"github.com/compiletest/workbench/log"
	"github.com/compiletest/workbench/trace"
)

// Workspace manages the location registry of one compilation run: the
// container groups answering lookups, the per-module partitions, the
// output allocator and the diagnostic collector.
type Workspace struct {
	mu sync.RWMutex

	log     *log.Logger
	options *Options
	matcher *fuzzy.Matcher

	groups     map[string]*group.ContainerGroup
	partitions map[string]*group.Partition
	outputs    map[outputKey]container.Container

	collector *trace.Collector
	closed    bool
}

// outputKey identifies one allocated output container.
type outputKey struct {
	location string
	module   string
}

// New creates an empty workspace.
func New(opts ...Option) (*Workspace, error) {
	options := newDefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	logger := options.Logger
	if logger == nil {
		logger = log.NewLogger("workbench", options.LogLevel, options.LogFile, !options.TerminalLog)
	}

	return &Workspace{
		log:        logger,
		options:    options,
		matcher:    fuzzy.NewMatcher(options.Fuzzy),
		groups:     make(map[string]*group.ContainerGroup),
		partitions: make(map[string]*group.Partition),
		outputs:    make(map[outputKey]container.Container),
		collector:  trace.NewCollector(),
	}, nil
}

// Collector returns the diagnostic sink for this run. Hosted compilations
// report into it; the assertion layer drains it afterwards.
func (w *Workspace) Collector() *trace.Collector {
	return w.collector
}

// Matcher returns the fuzzy matcher configured for this workspace.
func (w *Workspace) Matcher() *fuzzy.Matcher {
	return w.matcher
}

// Close stops the diagnostic collector and releases every container on
// every teardown path. Errors are joined, never swallowed. Idempotent.
func (w *Workspace) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.collector.Close()

	errs := data.Errors{}
	for _, g := range w.groups {
		errs.Add(g.Close(ctx))
	}
	for _, p := range w.partitions {
		errs.Add(p.Close(ctx))
	}

	w.log.Debug("workspace closed (%d groups, %d partitions, %d outputs)",
		len(w.groups), len(w.partitions), len(w.outputs))

	return errs.Errors()
}

// groupFor returns (or lazily creates) the container group for a
// non-module location. Caller must hold w.mu.
func (w *Workspace) groupFor(location data.Location) *group.ContainerGroup {
	if existing, exists := w.groups[location.Name]; exists {
		return existing
	}

	created := group.NewContainerGroup(location, w.options.SourceExts)
	w.groups[location.Name] = created
	w.log.Debug("created container group for location '%s'", location.Name)

	return created
}

// partitionFor returns (or lazily creates) the module partition for a
// module-oriented location. Caller must hold w.mu.
func (w *Workspace) partitionFor(location data.Location) *group.Partition {
	if existing, exists := w.partitions[location.Name]; exists {
		return existing
	}

	created := group.NewPartition(location, w.options.SourceExts)
	w.partitions[location.Name] = created
	w.log.Debug("created module partition for location '%s'", location.Name)

	return created
}
