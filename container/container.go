package container

import (
	"context"

	"github.com/compiletest/workbench/data"
)

// Kind identifies the backing storage of a container.
type Kind string

const (
	KindMemory    Kind = "memory"
	KindDirectory Kind = "directory"
	KindArchive   Kind = "archive"
	KindSQLite    Kind = "sqlite"
	KindS3        Kind = "s3"
	KindConsul    Kind = "consul"
	KindPostgres  Kind = "postgres"
)

// Capabilities describes what a container supports.
type Capabilities struct {
	Readable bool
	Writable bool
}

// Container is one backing root (a directory tree, an archive root, an
// in-memory tree or a remote store) that can list, read and optionally
// write files beneath it. A container is exclusively owned by exactly one
// container group; it is never shared across groups.
//
// All paths are relative to the container root and are expected to be
// cleaned with data.CleanRelativePath before they reach the container.
type Container interface {
	// ID returns the unique identifier assigned to this container.
	ID() string

	// Kind returns the backing storage kind.
	Kind() Kind

	// Capabilities returns the read/write capabilities of this container.
	Capabilities() Capabilities

	// Open is part of the lifecycle behaviour and gets called when the
	// container is bound to a group.
	Open(ctx context.Context) error

	// Close releases the backing resources. It must be safe to call on
	// every teardown path, including after a failed Open.
	Close(ctx context.Context) error

	// Stat returns information about a single file.
	// Returns data.ErrNotExist if the path doesn't exist.
	Stat(ctx context.Context, path string) (*data.FileStat, error)

	// ReadFile returns the full content of a file.
	// Returns data.ErrNotExist if the path doesn't exist.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile stores the full content of a file, creating all
	// intermediate segments. Returns data.ErrReadOnly for containers
	// without the writable capability.
	WriteFile(ctx context.Context, path string, content []byte) error

	// List returns the relative paths of all files beneath the root.
	// Directories are not listed; enumeration order is deterministic
	// for a fixed container state.
	List(ctx context.Context) ([]string, error)
}
