package group

import (
	"context"
	"testing"

	"github.com/compiletest/workbench/container/memory"
	"github.com/compiletest/workbench/data"
)

func newTestPartition() *Partition {
	return NewPartition(data.NewModuleLocation("MODULE_SOURCE_PATH", false), sourceExts)
}

func TestPartition_GetOrCreateIdempotent(t *testing.T) {
	p := newTestPartition()

	first := p.GetOrCreateModule("core")
	second := p.GetOrCreateModule("core")

	if first != second {
		t.Error("expected the same group for repeated get-or-create")
	}
}

func TestPartition_ModuleIsolation(t *testing.T) {
	p := newTestPartition()

	a := p.GetOrCreateModule("a")
	b := p.GetOrCreateModule("b")
	if a == b {
		t.Fatal("expected distinct groups per module")
	}

	c := memory.New()
	if err := c.WriteFile(context.Background(), "mod/impl.java", []byte("x")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := a.Add(context.Background(), c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if _, found, _ := a.Resolve(context.Background(), "mod/impl.java"); !found {
		t.Error("expected file visible in module a")
	}
	if _, found, _ := b.Resolve(context.Background(), "mod/impl.java"); found {
		t.Error("file written into module a leaked into module b")
	}
}

func TestPartition_GetModuleDoesNotCreate(t *testing.T) {
	p := newTestPartition()

	if _, exists := p.GetModule("phantom"); exists {
		t.Fatal("expected phantom module to be absent")
	}
	if names := p.ModuleNames(); len(names) != 0 {
		t.Errorf("non-creating lookup fabricated modules: %v", names)
	}
}

func TestPartition_ExactNames(t *testing.T) {
	p := newTestPartition()

	p.GetOrCreateModule("Core")
	if _, exists := p.GetModule("core"); exists {
		t.Error("module names must compare by exact value")
	}
}
