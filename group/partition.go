package group

import (
	"context"
	"sort"
	"sync"

	"github.com/compiletest/workbench/data"
	"github.com/compiletest/workbench/fuzzy"
)

// Partition subdivides a module-oriented location into independent
// container groups, one per module. Module names are compared by exact
// value; a partition never merges two spellings.
type Partition struct {
	mu         sync.RWMutex
	location   data.Location
	modules    map[string]*ContainerGroup
	sourceExts []string
}

// NewPartition creates an empty partition for the given location.
func NewPartition(location data.Location, sourceExts []string) *Partition {
	return &Partition{
		location:   location,
		modules:    make(map[string]*ContainerGroup),
		sourceExts: sourceExts,
	}
}

func (p *Partition) Location() data.Location {
	return p.location
}

// GetOrCreateModule returns the group for the named module, creating an
// empty one on first use. Idempotent.
func (p *Partition) GetOrCreateModule(name string) *ContainerGroup {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, exists := p.modules[name]; exists {
		return existing
	}

	created := NewContainerGroup(p.location, p.sourceExts)
	p.modules[name] = created

	return created
}

// GetModule is the non-creating lookup, used by read paths that must not
// fabricate modules implicitly.
func (p *Partition) GetModule(name string) (*ContainerGroup, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	existing, exists := p.modules[name]
	return existing, exists
}

// ModuleNames returns all registered module names in lexical order.
func (p *Partition) ModuleNames() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.modules))
	for name := range p.modules {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Suggest ranks registered module names against a failed module lookup.
func (p *Partition) Suggest(query string, matcher *fuzzy.Matcher) []fuzzy.Match {
	return matcher.Rank(query, p.ModuleNames())
}

// Close releases every module group. Close errors are joined.
func (p *Partition) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	errs := data.Errors{}
	for _, module := range p.modules {
		errs.Add(module.Close(ctx))
	}

	return errs.Errors()
}
