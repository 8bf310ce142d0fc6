package workbench

import (
	"github.com/compiletest/workbench/container"
	"github.com/compiletest/workbench/container/memory"
	"github.com/compiletest/workbench/fuzzy"
	"github.com/compiletest/workbench/log"
)

type Options struct {
	Logger         *log.Logger
	LogLevel       log.LogLevel
	LogFile        string
	TerminalLog    bool
	Fuzzy          fuzzy.Config
	SourceExts     []string
	ArtifactSuffix string

	// OutputFactory builds the backing container for output locations.
	// Defaults to an in-memory root: workspace runs are short-lived and
	// disk I/O is unnecessary overhead.
	OutputFactory func() container.Container
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		LogLevel:       log.Info,
		SourceExts:     []string{".java"},
		ArtifactSuffix: ".class",
		Fuzzy:          fuzzy.DefaultConfig(),
		OutputFactory: func() container.Container {
			return memory.New()
		},
	}
}

// WithLogger replaces the workspace logger entirely.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) error {
		o.Logger = logger
		return nil
	}
}

func WithLogLevel(level log.LogLevel) Option {
	return func(o *Options) error {
		o.LogLevel = level
		return nil
	}
}

// WithLogFile attaches a rotated file sink for workspace lifecycle events.
func WithLogFile(file string) Option {
	return func(o *Options) error {
		o.LogFile = file
		return nil
	}
}

// WithTerminalLog enables logging to stdout. Off by default since
// workspaces usually live inside test binaries.
func WithTerminalLog() Option {
	return func(o *Options) error {
		o.TerminalLog = true
		return nil
	}
}

// WithFuzzyConfig overrides the suggestion thresholds for this workspace.
func WithFuzzyConfig(config fuzzy.Config) Option {
	return func(o *Options) error {
		o.Fuzzy = config
		return nil
	}
}

// WithSourceExtensions sets the extensions classified as sources.
func WithSourceExtensions(exts ...string) Option {
	return func(o *Options) error {
		o.SourceExts = exts
		return nil
	}
}

// WithArtifactSuffix sets the suffix the loader appends to slash-mapped
// artifact names.
func WithArtifactSuffix(suffix string) Option {
	return func(o *Options) error {
		o.ArtifactSuffix = suffix
		return nil
	}
}

// WithOutputFactory replaces the backing store used for freshly allocated
// output containers.
func WithOutputFactory(factory func() container.Container) Option {
	return func(o *Options) error {
		o.OutputFactory = factory
		return nil
	}
}
