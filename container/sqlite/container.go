package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
)

// Container stores a file tree in a single SQLite database. Useful for
// fixture trees that are reused across many workspace runs: the database
// can be committed next to the tests and mounted read-only.
type Container struct {
	mu       sync.RWMutex
	id       string
	dbPath   string
	writable bool

	db *sql.DB
}

// New creates a container over the database at dbPath.
// Use ":memory:" for a throwaway database.
func New(dbPath string, writable bool) *Container {
	return &Container{
		id:       uuid.NewString(),
		dbPath:   dbPath,
		writable: writable,
	}
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) Kind() container.Kind {
	return container.KindSQLite
}

func (c *Container) Capabilities() container.Capabilities {
	return container.Capabilities{
		Readable: true,
		Writable: c.writable,
	}
}

// Open connects to the database and ensures the schema exists.
func (c *Container) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", c.dbPath)
	if err != nil {
		return err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS workbench_files (
		path TEXT PRIMARY KEY,
		content BLOB NOT NULL,
		size INTEGER NOT NULL CHECK(size >= 0),
		modify_time INTEGER NOT NULL
	);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return err
	}

	c.db = db
	return nil
}

// Close releases the database handle. Safe without a prior successful Open.
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil

	return err
}

func (c *Container) Stat(ctx context.Context, path string) (*data.FileStat, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.db == nil {
		return nil, data.ErrClosed
	}

	var size, modifyTime int64
	err := c.db.QueryRowContext(ctx, `
		SELECT size, modify_time FROM workbench_files WHERE path = ?
	`, path).Scan(&size, &modifyTime)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	return &data.FileStat{
		Path:       path,
		Size:       size,
		ModifyTime: time.Unix(0, modifyTime),
	}, nil
}

func (c *Container) ReadFile(ctx context.Context, path string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.db == nil {
		return nil, data.ErrClosed
	}

	var content []byte
	err := c.db.QueryRowContext(ctx, `
		SELECT content FROM workbench_files WHERE path = ?
	`, path).Scan(&content)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	if c.db == nil {
		return data.ErrClosed
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO workbench_files (path, content, size, modify_time)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content = excluded.content,
			size = excluded.size,
			modify_time = excluded.modify_time
	`, path, content, int64(len(content)), time.Now().UnixNano())

	return err
}

func (c *Container) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.db == nil {
		return nil, data.ErrClosed
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT path FROM workbench_files ORDER BY path
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, rows.Err()
}
