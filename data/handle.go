package data

import (
	"fmt"
	"strings"
	"time"
)

// FileKind classifies a resolved file by its role in a compilation.
type FileKind uint8

const (
	KindOther FileKind = iota
	KindSource
	KindClass
	KindResource
)

func (k FileKind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindClass:
		return "class"
	case KindResource:
		return "resource"
	}
	return "other"
}

// KindForPath classifies a relative path by extension.
// sourceExts lists the extensions (with leading dot) treated as sources;
// anything that is neither a source nor a compiled class counts as a resource.
func KindForPath(path string, sourceExts []string) FileKind {
	for _, ext := range sourceExts {
		if strings.HasSuffix(path, ext) {
			return KindSource
		}
	}
	if strings.HasSuffix(path, ".class") {
		return KindClass
	}
	if strings.Contains(path, ".") {
		return KindResource
	}
	return KindOther
}

// FileHandle represents one resolved file beneath a container root.
// Handles are created on successful lookup or on write allocation and are
// immutable once returned.
type FileHandle struct {
	ContainerID string
	Location    Location
	Path        string
	Kind        FileKind
}

func (h *FileHandle) String() string {
	return fmt.Sprintf("%s:%s", h.Location.Name, h.Path)
}

// FileStat describes a single file beneath a container root.
type FileStat struct {
	Path       string
	Size       int64
	ModifyTime time.Time
}
