package workbench

import (
	"context"
	"fmt"

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
	"github.com/compiletest/workbench/fuzzy"
	"github.com/compiletest/workbench/group"
)

// AddContainer binds a container to a non-module location. Containers are
// searched in the order they were added; adding after the first query on
// the location is rejected.
func (w *Workspace) AddContainer(ctx context.Context, location data.Location, c container.Container) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return data.ErrClosed
	}
	if location.ModuleOriented {
		return fmt.Errorf("location '%s': containers attach per module: %w",
			location.Name, data.ErrModuleOriented)
	}

	return w.groupFor(location).Add(ctx, c)
}

// AddModuleContainer binds a container to one module of a module-oriented
// location.
func (w *Workspace) AddModuleContainer(ctx context.Context, location data.Location, module string, c container.Container) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return data.ErrClosed
	}
	if !location.ModuleOriented {
		return fmt.Errorf("location '%s': %w", location.Name, data.ErrNotModuleOriented)
	}

	return w.partitionFor(location).GetOrCreateModule(module).Add(ctx, c)
}

// Resolve looks a relative path up in the location's container overlay.
// A miss is (nil, false, nil); the caller decides whether that is fatal.
func (w *Workspace) Resolve(ctx context.Context, location data.Location, path string) (*data.FileHandle, bool, error) {
	g, err := w.lookupGroup(location)
	if err != nil {
		return nil, false, err
	}

	return g.Resolve(ctx, path)
}

// ResolveWithSuggestions behaves like Resolve but, on a miss, ranks all
// known paths against the query so failure reports can offer guidance.
func (w *Workspace) ResolveWithSuggestions(ctx context.Context, location data.Location, path string) (*data.FileHandle, []fuzzy.Match, error) {
	g, err := w.lookupGroup(location)
	if err != nil {
		return nil, nil, err
	}

	handle, found, err := g.Resolve(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if found {
		return handle, nil, nil
	}

	matches, err := g.Suggest(ctx, path, w.matcher)
	if err != nil {
		return nil, nil, err
	}

	return nil, matches, nil
}

// ListAll unions the contents of all containers bound to the location.
func (w *Workspace) ListAll(ctx context.Context, location data.Location) ([]*data.FileHandle, error) {
	g, err := w.lookupGroup(location)
	if err != nil {
		return nil, err
	}

	return g.ListAll(ctx)
}

// GetOrCreateModule returns the container group for one module of a
// module-oriented location, creating an empty group on first use.
func (w *Workspace) GetOrCreateModule(location data.Location, module string) (*group.ContainerGroup, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, data.ErrClosed
	}
	if !location.ModuleOriented {
		return nil, fmt.Errorf("location '%s': %w", location.Name, data.ErrNotModuleOriented)
	}

	return w.partitionFor(location).GetOrCreateModule(module), nil
}

// GetModule is the non-creating module lookup.
func (w *Workspace) GetModule(location data.Location, module string) (*group.ContainerGroup, bool, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !location.ModuleOriented {
		return nil, false, fmt.Errorf("location '%s': %w", location.Name, data.ErrNotModuleOriented)
	}

	partition, exists := w.partitions[location.Name]
	if !exists {
		return nil, false, nil
	}

	g, found := partition.GetModule(module)
	return g, found, nil
}

// SuggestModules ranks registered module names against a failed module
// lookup.
func (w *Workspace) SuggestModules(location data.Location, query string) ([]fuzzy.Match, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !location.ModuleOriented {
		return nil, fmt.Errorf("location '%s': %w", location.Name, data.ErrNotModuleOriented)
	}

	partition, exists := w.partitions[location.Name]
	if !exists {
		return nil, nil
	}

	return partition.Suggest(query, w.matcher), nil
}

// OutputContainer returns the writable container backing a non-module
// output location, allocating it on first use. Exactly one container is
// created even when concurrent first-writers race; losers receive the
// winner's container.
func (w *Workspace) OutputContainer(ctx context.Context, location data.Location) (container.Container, error) {
	if location.ModuleOriented {
		return nil, fmt.Errorf("location '%s': output attaches per module: %w",
			location.Name, data.ErrModuleOriented)
	}

	return w.allocateOutput(ctx, location, "")
}

// OutputModuleContainer returns the writable container backing one module
// of a module-oriented output location.
func (w *Workspace) OutputModuleContainer(ctx context.Context, location data.Location, module string) (container.Container, error) {
	if !location.ModuleOriented {
		return nil, fmt.Errorf("location '%s': %w", location.Name, data.ErrNotModuleOriented)
	}

	return w.allocateOutput(ctx, location, module)
}

// Loader returns the class-loading view over a non-module output location,
// allocating the backing container if needed. The view is live: artifacts
// written after the view was requested are observable.
func (w *Workspace) Loader(ctx context.Context, location data.Location) (*group.Loader, error) {
	c, err := w.OutputContainer(ctx, location)
	if err != nil {
		return nil, err
	}

	return group.NewLoader(c, w.options.ArtifactSuffix), nil
}

// ModuleLoader returns the class-loading view over one module of a
// module-oriented output location.
func (w *Workspace) ModuleLoader(ctx context.Context, location data.Location, module string) (*group.Loader, error) {
	c, err := w.OutputModuleContainer(ctx, location, module)
	if err != nil {
		return nil, err
	}

	return group.NewLoader(c, w.options.ArtifactSuffix), nil
}

// allocateOutput performs the atomic get-or-create for one output key and
// registers the fresh container with the location's overlay so the hosted
// compilation can read back what it wrote.
func (w *Workspace) allocateOutput(ctx context.Context, location data.Location, module string) (container.Container, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, data.ErrClosed
	}
	if !location.Output {
		return nil, fmt.Errorf("location '%s': %w", location.Name, data.ErrNotOutputLocation)
	}

	key := outputKey{location: location.Name, module: module}
	if existing, exists := w.outputs[key]; exists {
		return existing, nil
	}

	created := w.options.OutputFactory()

	var target *group.ContainerGroup
	if module == "" {
		target = w.groupFor(location)
	} else {
		target = w.partitionFor(location).GetOrCreateModule(module)
	}

	if err := target.Add(ctx, created); err != nil {
		return nil, err
	}

	w.outputs[key] = created
	w.log.Debug("allocated %s output container for location '%s'%s",
		created.Kind(), location.Name, moduleSuffix(module))

	return created, nil
}

func moduleSuffix(module string) string {
	if module == "" {
		return ""
	}
	return fmt.Sprintf(" module '%s'", module)
}

// lookupGroup fetches (or lazily creates) the overlay for a non-module
// location under the workspace lock.
func (w *Workspace) lookupGroup(location data.Location) (*group.ContainerGroup, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, data.ErrClosed
	}
	if location.ModuleOriented {
		return nil, fmt.Errorf("location '%s': use the module operations: %w",
			location.Name, data.ErrModuleOriented)
	}

	return w.groupFor(location), nil
}
