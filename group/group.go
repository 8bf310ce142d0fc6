// Package group implements the ordered container overlay answering lookups
// for one location, the per-module partitioning of module-oriented locations
// and the read-through loader view over output containers.
package group

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
	"github.com/compiletest/workbench/fuzzy"
)

// ContainerGroup is an ordered sequence of containers bound to one location.
// Lookups search the containers strictly in insertion order and return the
// first hit, mirroring classpath precedence semantics.
//
// Containers may be added until the first query has been issued; after that
// the sequence is sealed and Add is rejected, which keeps lookup precedence
// deterministic and referentially stable.
type ContainerGroup struct {
	mu         sync.RWMutex
	location   data.Location
	containers []container.Container
	sourceExts []string

	sealed atomic.Bool
}

// NewContainerGroup creates an empty group for the given location.
// sourceExts drives file-kind classification of resolved handles.
func NewContainerGroup(location data.Location, sourceExts []string) *ContainerGroup {
	return &ContainerGroup{
		location:   location,
		sourceExts: sourceExts,
	}
}

func (g *ContainerGroup) Location() data.Location {
	return g.location
}

// Add opens the container and appends it to the lookup sequence.
// Returns data.ErrGroupSealed once a query has been issued.
func (g *ContainerGroup) Add(ctx context.Context, c container.Container) error {
	if g.sealed.Load() {
		return fmt.Errorf("location '%s': %w", g.location.Name, data.ErrGroupSealed)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := c.Open(ctx); err != nil {
		return fmt.Errorf("location '%s': failed to open %s container: %w",
			g.location.Name, c.Kind(), err)
	}

	g.containers = append(g.containers, c)
	return nil
}

// Containers returns the lookup sequence in order.
func (g *ContainerGroup) Containers() []container.Container {
	g.mu.RLock()
	defer g.mu.RUnlock()

	containers := make([]container.Container, len(g.containers))
	copy(containers, g.containers)

	return containers
}

// Resolve searches the containers in insertion order and returns the first
// hit. A miss is (nil, false, nil); only backing-store failures surface as
// errors. An empty or all-slash path is never resolved.
func (g *ContainerGroup) Resolve(ctx context.Context, path string) (*data.FileHandle, bool, error) {
	g.sealed.Store(true)

	cleaned, err := data.CleanRelativePath(path)
	if err != nil {
		return nil, false, nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, c := range g.containers {
		_, err := c.Stat(ctx, cleaned)
		if err != nil {
			if errors.Is(err, data.ErrNotExist) {
				continue
			}
			return nil, false, fmt.Errorf("location '%s': failed to resolve '%s': %w",
				g.location.Name, cleaned, err)
		}

		return &data.FileHandle{
			ContainerID: c.ID(),
			Location:    g.location,
			Path:        cleaned,
			Kind:        data.KindForPath(cleaned, g.sourceExts),
		}, true, nil
	}

	return nil, false, nil
}

// ListAll unions the contents of all containers, each entry relativized to
// its own container root. Duplicate paths across containers are preserved
// distinctly since they belong to different roots.
func (g *ContainerGroup) ListAll(ctx context.Context) ([]*data.FileHandle, error) {
	g.sealed.Store(true)

	g.mu.RLock()
	defer g.mu.RUnlock()

	var handles []*data.FileHandle
	for _, c := range g.containers {
		paths, err := c.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("location '%s': failed to list %s container: %w",
				g.location.Name, c.Kind(), err)
		}

		for _, path := range paths {
			cleaned, err := data.CleanRelativePath(path)
			if err != nil {
				continue
			}

			handles = append(handles, &data.FileHandle{
				ContainerID: c.ID(),
				Location:    g.location,
				Path:        cleaned,
				Kind:        data.KindForPath(cleaned, g.sourceExts),
			})
		}
	}

	return handles, nil
}

// Suggest ranks all known paths against a failed query. Candidate discovery
// order is container order, then each backend's own enumeration order, so
// the ranking is deterministic for a fixed group state.
func (g *ContainerGroup) Suggest(ctx context.Context, query string, matcher *fuzzy.Matcher) ([]fuzzy.Match, error) {
	handles, err := g.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(handles))
	for _, handle := range handles {
		candidates = append(candidates, handle.Path)
	}

	return matcher.Rank(query, candidates), nil
}

// Close releases every container in the group. All close errors are
// collected and joined rather than aborting on the first.
func (g *ContainerGroup) Close(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	errs := data.Errors{}
	for _, c := range g.containers {
		if err := c.Close(ctx); err != nil {
			errs.Add(fmt.Errorf("location '%s': failed to close %s container: %w",
				g.location.Name, c.Kind(), err))
		}
	}

	return errs.Errors()
}
