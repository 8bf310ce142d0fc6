package s3

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
)

// Config contains the connection options for an S3-backed container.
type Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// Prefix scopes the container to a subtree of the bucket (optional).
	Prefix string

	// Writable enables WriteFile; shared fixture buckets should stay
	// read-only so a test run can't clobber them.
	Writable bool
}

// Container exposes an S3 bucket (or a prefix of one) as a container root.
// Intended for shared fixture roots and library paths that are too large
// to commit next to the tests.
type Container struct {
	mu     sync.RWMutex
	id     string
	client *minio.Client
	config Config
}

// New creates a container over the configured bucket.
func New(config Config) (*Container, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		id:     uuid.NewString(),
		client: client,
		config: config,
	}, nil
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) Kind() container.Kind {
	return container.KindS3
}

func (c *Container) Capabilities() container.Capabilities {
	return container.Capabilities{
		Readable: true,
		Writable: c.config.Writable,
	}
}

// Open verifies the bucket exists.
func (c *Container) Open(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	exists, err := c.client.BucketExists(ctx, c.config.Bucket)
	if err != nil {
		return err
	}

	if !exists {
		return data.ErrContainerFailed
	}

	return nil
}

func (c *Container) Close(ctx context.Context) error {
	return nil
}

func (c *Container) Stat(ctx context.Context, path string) (*data.FileStat, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, err := c.client.StatObject(ctx, c.config.Bucket, c.key(path), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	return &data.FileStat{
		Path:       path,
		Size:       info.Size,
		ModifyTime: info.LastModified,
	}, nil
}

func (c *Container) ReadFile(ctx context.Context, path string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	object, err := c.client.GetObject(ctx, c.config.Bucket, c.key(path), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, data.ErrNotExist
		}
		return nil, err
	}

	return content, nil
}

func (c *Container) WriteFile(ctx context.Context, path string, content []byte) error {
	if !c.config.Writable {
		return data.ErrReadOnly
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.client.PutObject(ctx, c.config.Bucket, c.key(path),
		bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{})

	return err
}

// List enumerates the bucket subtree recursively. The listing order is the
// bucket's native lexical key order.
func (c *Container) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	objects := c.client.ListObjects(ctx, c.config.Bucket, minio.ListObjectsOptions{
		Prefix:    c.config.Prefix,
		Recursive: true,
	})

	var paths []string
	for object := range objects {
		if object.Err != nil {
			return nil, object.Err
		}

		rel := strings.TrimPrefix(object.Key, c.config.Prefix)
		name, err := data.CleanRelativePath(rel)
		if err != nil {
			continue
		}
		paths = append(paths, name)
	}

	return paths, nil
}

// key joins the configured prefix with the cleaned relative path.
func (c *Container) key(path string) string {
	if c.config.Prefix == "" {
		return path
	}
	return strings.TrimSuffix(c.config.Prefix, "/") + "/" + path
}
