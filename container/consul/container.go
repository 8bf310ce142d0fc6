package consul

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/consul/api"

	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/data"
)

// Config contains the connection options for a Consul-backed container.
type Config struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Prefix scopes all keys beneath a KV subtree (default: "workbench/")
	Prefix string

	// Writable enables WriteFile.
	Writable bool
}

// Container exposes a Consul KV subtree as a container root. File content
// is stored directly as the KV value; Consul limits values to 512KB, so
// this backing suits small configuration and fixture trees.
type Container struct {
	mu     sync.RWMutex
	id     string
	kv     *api.KV
	config Config
}

// New creates a container over the configured KV subtree.
func New(config Config) (*Container, error) {
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	if config.Prefix == "" {
		config.Prefix = "workbench/"
	}
	if !strings.HasSuffix(config.Prefix, "/") {
		config.Prefix += "/"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &Container{
		id:     uuid.NewString(),
		kv:     client.KV(),
		config: config,
	}, nil
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) Kind() container.Kind {
	return container.KindConsul
}

func (c *Container) Capabilities() container.Capabilities {
	return container.Capabilities{
		Readable: true,
		Writable: c.config.Writable,
	}
}

// Open verifies the Consul agent is reachable.
func (c *Container) Open(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, _, err := c.kv.Keys(c.config.Prefix, "/", c.queryOptions(ctx))
	return err
}

func (c *Container) Close(ctx context.Context) error {
	return nil
}

func (c *Container) Stat(ctx context.Context, path string) (*data.FileStat, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pair, _, err := c.kv.Get(c.key(path), c.queryOptions(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, data.ErrNotExist
	}

	// Consul KV carries no modification timestamp.
	return &data.FileStat{
		Path:       path,
		Size:       int64(len(pair.Value)),
		ModifyTime: time.Time{},
	}, nil
}

func (c *Container) ReadFile(ctx context.Context, path string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pair, _, err := c.kv.Get(c.key(path), c.queryOptions(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, data.ErrNotExist
	}

	return pair.Value, nil
}

func (c *Container) WriteFile(ctx context.Context, path string, content []byte) error {
	if !c.config.Writable {
		return data.ErrReadOnly
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pair := &api.KVPair{
		Key:   c.key(path),
		Value: content,
	}

	_, err := c.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

// List enumerates all keys beneath the prefix in Consul's lexical order.
func (c *Container) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, _, err := c.kv.Keys(c.config.Prefix, "", c.queryOptions(ctx))
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(keys))
	for _, key := range keys {
		rel := strings.TrimPrefix(key, c.config.Prefix)
		name, err := data.CleanRelativePath(rel)
		if err != nil {
			continue
		}
		paths = append(paths, name)
	}

	return paths, nil
}

func (c *Container) key(path string) string {
	return c.config.Prefix + path
}

func (c *Container) queryOptions(ctx context.Context) *api.QueryOptions {
	return (&api.QueryOptions{}).WithContext(ctx)
}
