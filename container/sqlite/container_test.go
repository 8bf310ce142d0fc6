package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/compiletest/workbench/data"
)

func TestContainer_WriteReadRoundTrip(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "fixtures.db"), true)
	if err := c.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close(context.Background())

	if err := c.WriteFile(context.Background(), "com/example/A.java", []byte("class A {}")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	content, err := c.ReadFile(context.Background(), "com/example/A.java")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "class A {}" {
		t.Errorf("unexpected content: %q", content)
	}

	// Overwrites replace, not append.
	if err := c.WriteFile(context.Background(), "com/example/A.java", []byte("v2")); err != nil {
		t.Fatalf("second WriteFile failed: %v", err)
	}
	content, err = c.ReadFile(context.Background(), "com/example/A.java")
	if err != nil {
		t.Fatalf("ReadFile after overwrite failed: %v", err)
	}
	if string(content) != "v2" {
		t.Errorf("expected overwritten content, got %q", content)
	}
}

func TestContainer_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fixtures.db")

	writer := New(dbPath, true)
	if err := writer.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := writer.WriteFile(context.Background(), "keep.txt", []byte("kept")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := writer.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reader := New(dbPath, false)
	if err := reader.Open(context.Background()); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reader.Close(context.Background())

	content, err := reader.ReadFile(context.Background(), "keep.txt")
	if err != nil {
		t.Fatalf("ReadFile after reopen failed: %v", err)
	}
	if string(content) != "kept" {
		t.Errorf("unexpected content: %q", content)
	}

	if err := reader.WriteFile(context.Background(), "new.txt", []byte("x")); !errors.Is(err, data.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestContainer_ListOrdered(t *testing.T) {
	c := New(":memory:", true)
	if err := c.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close(context.Background())

	for _, path := range []string{"b.txt", "a.txt", "c.txt"} {
		if err := c.WriteFile(context.Background(), path, []byte(path)); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	paths, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	expected := []string{"a.txt", "b.txt", "c.txt"}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d", len(expected), len(paths))
	}
	for i := range expected {
		if paths[i] != expected[i] {
			t.Errorf("position %d: expected %q, got %q", i, expected[i], paths[i])
		}
	}
}

func TestContainer_ClosedRejectsOperations(t *testing.T) {
	c := New(":memory:", true)

	if _, err := c.ReadFile(context.Background(), "x"); !errors.Is(err, data.ErrClosed) {
		t.Errorf("expected ErrClosed before Open, got %v", err)
	}
}
