package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/compiletest/workbench/data"
)

// Collector is a thread-safe, append-only sink for diagnostics reported
// during one hosted compilation run. Multiple goroutines may record
// concurrently; every successful Record is reflected exactly once, while
// cross-goroutine ordering is whatever interleaving the run produced.
//
// The collector moves Open -> Closed once; recording after Close is a
// lifecycle bug in the caller and is rejected.
type Collector struct {
	mu      sync.Mutex
	entries []TraceDiagnostic
	closed  bool
}

// NewCollector creates an open collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record wraps the diagnostic with capture-time metadata and appends it.
// The clock reading, goroutine identity and call stack are captured
// synchronously on the reporting goroutine, so the stack reflects the
// actual reporting call site. Returns data.ErrCollectorClosed after Close.
func (c *Collector) Record(d Diagnostic) error {
	// Captured before taking the lock so the metadata belongs to the
	// reporting goroutine, not to whoever wins the lock first.
	id := goroutineID()
	entry := TraceDiagnostic{
		Diagnostic:     d,
		Time:           time.Now(),
		GoroutineID:    id,
		GoroutineLabel: "goroutine-" + strconv.FormatUint(id, 10),
		Stack:          captureStack(2),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return data.ErrCollectorClosed
	}

	c.entries = append(c.entries, entry)
	return nil
}

// Drain returns a snapshot of all recorded diagnostics in append order.
// Once the collector is closed, repeated calls return a consistent view.
func (c *Collector) Drain() []TraceDiagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]TraceDiagnostic, len(c.entries))
	copy(entries, c.entries)

	return entries
}

// Close stops accepting diagnostics. Idempotent; already recorded entries
// stay available through Drain.
func (c *Collector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
}

// Closed reports whether the collector has been closed.
func (c *Collector) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// captureStack records the caller's stack, skipping the collector's own
// frames.
func captureStack(skip int) []Frame {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	stack := make([]Frame, 0, n)
	for {
		frame, more := frames.Next()
		stack = append(stack, Frame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}

	return stack
}

// goroutineID parses the numeric id from the runtime's stack header
// ("goroutine 12 [running]:"). The runtime exposes no direct accessor.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]

	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if idx := bytes.IndexByte(buf, ' '); idx > 0 {
		if id, err := strconv.ParseUint(string(buf[:idx]), 10, 64); err == nil {
			return id
		}
	}

	return 0
}
