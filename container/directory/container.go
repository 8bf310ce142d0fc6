package directory

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
)

// Container exposes a real on-disk directory tree as a container root.
// The on-disk layout mirrors the relative paths used in lookups verbatim.
type Container struct {
	mu       sync.RWMutex
	id       string
	root     string
	writable bool
}

// New creates a container over the given directory root.
// When writable is false, WriteFile returns data.ErrReadOnly.
func New(root string, writable bool) *Container {
	return &Container{
		id:       uuid.NewString(),
		root:     filepath.Clean(root),
		writable: writable,
	}
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) Kind() container.Kind {
	return container.KindDirectory
}

func (c *Container) Capabilities() container.Capabilities {
	return container.Capabilities{
		Readable: true,
		Writable: c.writable,
	}
}

// Open verifies the root exists and is a directory.
func (c *Container) Open(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, err := os.Stat(c.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return data.ErrContainerFailed
		}
		return err
	}

	if !info.IsDir() {
		return data.ErrContainerFailed
	}

	return nil
}

// Close is a no-op; the underlying directory persists independently.
func (c *Container) Close(ctx context.Context) error {
	return nil
}

func (c *Container) Stat(ctx context.Context, path string) (*data.FileStat, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	full, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	if info.IsDir() {
		return nil, data.ErrIsDirectory
	}

	return &data.FileStat{
		Path:       path,
		Size:       info.Size(),
		ModifyTime: info.ModTime(),
	}, nil
}

func (c *Container) ReadFile(ctx context.Context, path string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	full, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	return content, nil
}

func (c *Container) WriteFile(ctx context.Context, path string, content []byte) error {
	if !c.writable {
		return data.ErrReadOnly
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	full, err := c.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	return os.WriteFile(full, content, 0o644)
}

func (c *Container) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var paths []string
	err := filepath.WalkDir(c.root, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(c.root, full)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

// resolve joins the root with the cleaned relative path, refusing any
// traversal outside the root.
func (c *Container) resolve(path string) (string, error) {
	cleaned, err := data.CleanRelativePath(path)
	if err != nil {
		return "", err
	}

	full := filepath.Join(c.root, filepath.FromSlash(cleaned))
	if full != c.root && !strings.HasPrefix(full, c.root+string(filepath.Separator)) {
		return "", data.ErrInvalidPath
	}

	return full, nil
}
