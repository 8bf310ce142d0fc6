package group

import (
	"context"
	"errors"
	"strings"

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
)

// ByteSource fetches freshly written binary artifacts by fully-qualified
// name so they can be loaded into the host runtime without a round trip
// through disk.
type ByteSource interface {
	// Fetch returns the artifact bytes, or false when no artifact with
	// that name exists yet.
	Fetch(ctx context.Context, name string) ([]byte, bool, error)
}

// Loader is the class-loading view over one output container. It resolves
// names lazily against the live container at fetch time rather than taking
// a snapshot, so a compile-then-load workflow sees artifacts emitted after
// the view was first requested.
type Loader struct {
	container container.Container
	suffix    string
}

// NewLoader creates a view over the given container. suffix is appended to
// the slash-mapped name, e.g. ".class".
func NewLoader(c container.Container, suffix string) *Loader {
	return &Loader{
		container: c,
		suffix:    suffix,
	}
}

// Fetch maps a dotted fully-qualified name to its artifact path and reads
// it from the live container.
func (l *Loader) Fetch(ctx context.Context, name string) ([]byte, bool, error) {
	path, err := data.CleanRelativePath(strings.ReplaceAll(name, ".", "/") + l.suffix)
	if err != nil {
		return nil, false, nil
	}

	content, err := l.container.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, data.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return content, true, nil
}
