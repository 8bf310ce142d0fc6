package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/btree"

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
)

// Container is a thread-safe in-memory root. Files live in a B-tree keyed
// by relative path, which keeps List enumeration ordered and deterministic.
// All content is lost when the container is discarded; this is the default
// backing for output locations since workspace runs are short-lived.
type Container struct {
	mu     sync.RWMutex
	id     string
	files  *btree.Map[string, *entry]
	closed bool
}

type entry struct {
	content    []byte
	modifyTime time.Time
}

// New creates an empty in-memory container.
func New() *Container {
	return &Container{
		id:    uuid.NewString(),
		files: btree.NewMap[string, *entry](32),
	}
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) Kind() container.Kind {
	return container.KindMemory
}

func (c *Container) Capabilities() container.Capabilities {
	return container.Capabilities{
		Readable: true,
		Writable: true,
	}
}

func (c *Container) Open(ctx context.Context) error {
	return nil
}

// Close drops all stored content. Subsequent operations return
// data.ErrClosed; the tree does not quietly come back empty.
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.files = btree.NewMap[string, *entry](32)
	c.closed = true
	return nil
}

func (c *Container) Stat(ctx context.Context, path string) (*data.FileStat, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, data.ErrClosed
	}

	ent, exists := c.files.Get(path)
	if !exists {
		return nil, data.ErrNotExist
	}

	return &data.FileStat{
		Path:       path,
		Size:       int64(len(ent.content)),
		ModifyTime: ent.modifyTime,
	}, nil
}

func (c *Container) ReadFile(ctx context.Context, path string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, data.ErrClosed
	}

	ent, exists := c.files.Get(path)
	if !exists {
		return nil, data.ErrNotExist
	}

	// Copy so callers can't mutate stored content through the slice.
	content := make([]byte, len(ent.content))
	copy(content, ent.content)

	return content, nil
}

// WriteFile stores the content under path, replacing any previous version.
// Intermediate segments need no explicit creation in a path-keyed tree.
func (c *Container) WriteFile(ctx context.Context, path string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return data.ErrClosed
	}

	stored := make([]byte, len(content))
	copy(stored, content)

	c.files.Set(path, &entry{
		content:    stored,
		modifyTime: time.Now(),
	})

	return nil
}

func (c *Container) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, data.ErrClosed
	}

	paths := make([]string, 0, c.files.Len())
	// B-tree scan yields paths in lexical order.
	c.files.Scan(func(path string, _ *entry) bool {
		paths = append(paths, path)
		return true
	})

	return paths, nil
}
