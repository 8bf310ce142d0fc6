package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/compiletest/workbench/data"
)

func TestContainer_WriteRead(t *testing.T) {
	c := New()

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

	stat, err := c.Stat(context.Background(), "com/example/A.java")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if stat.Size != 10 {
		t.Errorf("expected size 10, got %d", stat.Size)
	}
	if stat.ModifyTime.IsZero() {
		t.Error("expected non-zero modify time")
	}
}

func TestContainer_ReadMissing(t *testing.T) {
	c := New()

	if _, err := c.ReadFile(context.Background(), "missing.txt"); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
	if _, err := c.Stat(context.Background(), "missing.txt"); !errors.Is(err, data.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestContainer_ListOrdered(t *testing.T) {
	c := New()

	for _, path := range []string{"b/two.txt", "a/one.txt", "c/three.txt"} {
		if err := c.WriteFile(context.Background(), path, []byte(path)); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	paths, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	expected := []string{"a/one.txt", "b/two.txt", "c/three.txt"}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d", len(expected), len(paths))
	}
	for i := range expected {
		if paths[i] != expected[i] {
			t.Errorf("position %d: expected %q, got %q", i, expected[i], paths[i])
		}
	}
}

func TestContainer_ContentIsolated(t *testing.T) {
	c := New()

	original := []byte("original")
	if err := c.WriteFile(context.Background(), "file.txt", original); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Mutating the caller's slice must not affect stored content.
	original[0] = 'X'

	content, err := c.ReadFile(context.Background(), "file.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "original" {
		t.Errorf("stored content was mutated: %q", content)
	}

	// Mutating the returned slice must not affect stored content either.
	content[0] = 'Y'
	again, _ := c.ReadFile(context.Background(), "file.txt")
	if string(again) != "original" {
		t.Errorf("stored content leaked through read: %q", again)
	}
}

func TestContainer_ClosedRejectsOperations(t *testing.T) {
	c := New()

	if err := c.WriteFile(context.Background(), "file.txt", []byte("x")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := c.WriteFile(context.Background(), "file.txt", []byte("y")); !errors.Is(err, data.ErrClosed) {
		t.Errorf("expected ErrClosed from write after close, got %v", err)
	}
	if _, err := c.ReadFile(context.Background(), "file.txt"); !errors.Is(err, data.ErrClosed) {
		t.Errorf("expected ErrClosed from read after close, got %v", err)
	}
	if _, err := c.Stat(context.Background(), "file.txt"); !errors.Is(err, data.ErrClosed) {
		t.Errorf("expected ErrClosed from stat after close, got %v", err)
	}
	if _, err := c.List(context.Background()); !errors.Is(err, data.ErrClosed) {
		t.Errorf("expected ErrClosed from list after close, got %v", err)
	}
}
