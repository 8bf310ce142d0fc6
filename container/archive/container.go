package archive

import (
	"archive/zip"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
)

// Container exposes the contents of a zip archive as a read-only root.
// The archive is mapped on Open and must be released with Close on every
// teardown path, including when the workspace is torn down by a failure
// elsewhere in the run.
type Container struct {
	mu   sync.RWMutex
	id   string
	path string

	reader *zip.ReadCloser
	index  map[string]*zip.File
}

// New creates a container over the archive at path.
// The archive is not touched until Open is called.
func New(path string) *Container {
	return &Container{
		id:   uuid.NewString(),
		path: path,
	}
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) Kind() container.Kind {
	return container.KindArchive
}

func (c *Container) Capabilities() container.Capabilities {
	return container.Capabilities{
		Readable: true,
		Writable: false,
	}
}

// Open maps the archive and builds the entry index. Entries whose cleaned
// path collapses to nothing (some archive layouts emit zero-length or
// all-slash names) are skipped and can never be resolved or listed.
func (c *Container) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reader != nil {
		return nil
	}

	reader, err := zip.OpenReader(c.path)
	if err != nil {
		return err
	}

	index := make(map[string]*zip.File, len(reader.File))
	for _, file := range reader.File {
		if file.FileInfo().IsDir() || strings.HasSuffix(file.Name, "/") {
			continue
		}

		name, err := data.CleanRelativePath(file.Name)
		if err != nil {
			continue
		}
		index[name] = file
	}

	c.reader = reader
	c.index = index

	return nil
}

// Close unmaps the archive. Safe to call without a prior successful Open.
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reader == nil {
		return nil
	}

	err := c.reader.Close()
	c.reader = nil
	c.index = nil

	return err
}

func (c *Container) Stat(ctx context.Context, path string) (*data.FileStat, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	file, err := c.lookup(path)
	if err != nil {
		return nil, err
	}

	info := file.FileInfo()
	return &data.FileStat{
		Path:       path,
		Size:       info.Size(),
		ModifyTime: info.ModTime(),
	}, nil
}

func (c *Container) ReadFile(ctx context.Context, path string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	file, err := c.lookup(path)
	if err != nil {
		return nil, err
	}

	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func (c *Container) WriteFile(ctx context.Context, path string, content []byte) error {
	return data.ErrReadOnly
}

// List returns the indexed archive entries in lexical order. Duplicate
// entry names inside one archive collapse to the last indexed entry.
func (c *Container) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.reader == nil {
		return nil, data.ErrClosed
	}

	paths := make([]string, 0, len(c.index))
	for name := range c.index {
		paths = append(paths, name)
	}
	sort.Strings(paths)

	return paths, nil
}

func (c *Container) lookup(path string) (*zip.File, error) {
	if c.reader == nil {
		return nil, data.ErrClosed
	}

	file, exists := c.index[path]
	if !exists {
		return nil, data.ErrNotExist
	}

	return file, nil
}
