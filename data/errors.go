package data

import (
	"errors"
	"sync"
)

// Standard workbench errors that container and group implementations should use.
var (
	// Path errors
	ErrInvalidPath = errors.New("workbench: invalid path detected")
	ErrNotExist    = errors.New("workbench: file does not exist")
	ErrExist       = errors.New("workbench: file already exists")
	ErrIsDirectory = errors.New("workbench: is a directory")

	// Capability errors
	ErrReadOnly    = errors.New("workbench: container is read-only")
	ErrNotReadable = errors.New("workbench: container is not readable")

	// Configuration misuse errors
	ErrGroupSealed       = errors.New("workbench: container group already queried")
	ErrNotModuleOriented = errors.New("workbench: location is not module-oriented")
	ErrModuleOriented    = errors.New("workbench: location is module-oriented")
	ErrNotOutputLocation = errors.New("workbench: location is not an output location")
	ErrUnknownLocation   = errors.New("workbench: location not configured")

	// Lifecycle errors
	ErrClosed          = errors.New("workbench: already closed")
	ErrCollectorClosed = errors.New("workbench: diagnostic collector already closed")
	ErrContainerFailed = errors.New("workbench: container initialization failed")
)

// Errors collects multiple errors and joins them into one.
type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
