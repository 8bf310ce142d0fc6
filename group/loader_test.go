package group

import (
	"context"
	"testing"

	"github.com/compiletest/workbench/container/memory"
)

func TestLoader_FetchMapsName(t *testing.T) {
	c := memory.New()
	if err := c.WriteFile(context.Background(), "com/example/Greeter.class", []byte{0xCA, 0xFE}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loader := NewLoader(c, ".class")

	content, found, err := loader.Fetch(context.Background(), "com.example.Greeter")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !found {
		t.Fatal("expected artifact to be found")
	}
	if len(content) != 2 {
		t.Errorf("unexpected content length %d", len(content))
	}
}

func TestLoader_LiveView(t *testing.T) {
	c := memory.New()
	loader := NewLoader(c, ".class")

	if _, found, err := loader.Fetch(context.Background(), "com.example.Late"); err != nil || found {
		t.Fatalf("expected clean miss before write, got found=%v err=%v", found, err)
	}

	// The view is not a snapshot: writes after view creation are visible.
	if err := c.WriteFile(context.Background(), "com/example/Late.class", []byte{1}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, found, err := loader.Fetch(context.Background(), "com.example.Late"); err != nil || !found {
		t.Errorf("expected artifact written after view creation, got found=%v err=%v", found, err)
	}
}

func TestLoader_MissIsNotAnError(t *testing.T) {
	loader := NewLoader(memory.New(), ".class")

	if _, found, err := loader.Fetch(context.Background(), "no.such.Artifact"); err != nil || found {
		t.Errorf("expected clean miss, got found=%v err=%v", found, err)
	}
}
