// Package trace captures diagnostics emitted during a hosted compilation,
// annotating each with enough metadata to let a test assert precisely why
// a build failed.
package trace

import (
	"fmt"
	"time"
)

// Kind classifies a diagnostic by severity.
type Kind uint8

const (
	KindOther Kind = iota
	KindNote
	KindWarning
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "NOTE"
	case KindWarning:
		return "WARNING"
	case KindError:
		return "ERROR"
	}
	return "OTHER"
}

// Diagnostic is the raw message reported by a hosted operation, before the
// collector enriches it with capture-time metadata. Offsets are byte
// offsets into the source; a negative StartOffset marks a diagnostic with
// no usable position.
type Diagnostic struct {
	Kind        Kind
	Path        string
	StartOffset int64
	EndOffset   int64
	Line        int64
	Column      int64
	Code        string
	Message     string
}

// HasPosition reports whether the diagnostic carries a usable source range.
func (d Diagnostic) HasPosition() bool {
	return d.StartOffset >= 0 && d.EndOffset >= d.StartOffset && d.Line > 0
}

// Frame is one entry of the reporting call stack.
type Frame struct {
	Function string
	File     string
	Line     int
}

func (f Frame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.Function, f.File, f.Line)
}

// TraceDiagnostic wraps one reported diagnostic with the capture-time
// clock reading, the reporting goroutine's identity and its call stack.
// Created exactly once per report, appended once and never mutated
// afterwards.
type TraceDiagnostic struct {
	Diagnostic

	Time           time.Time
	GoroutineID    uint64
	GoroutineLabel string
	Stack          []Frame
}

func (d *TraceDiagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("%s %s: %s", d.Kind, d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s %s: %s", d.Path, d.Line, d.Column, d.Kind, d.Code, d.Message)
}
