package snippet

import (
	"strings"
	"testing"
)

func TestRender_SingleLineSpan(t *testing.T) {
	src := "class A {\n  int x\n}"

	// The span covers the identifier 'x' on line 2.
	rendered := Render(src, 16, 17, 2)

	expected := strings.Join([]string{
		"1 | class A {",
		"2 |   int x",
		"  |       ^",
		"3 | }",
		"",
	}, "\n")

	if rendered != expected {
		t.Errorf("unexpected rendering:\n%q\nexpected:\n%q", rendered, expected)
	}
}

func TestRender_MultiLineSpan(t *testing.T) {
	src := "aaa\nbbb\nccc"

	rendered := Render(src, 1, 9, 1)

	expected := strings.Join([]string{
		"1 | aaa",
		"  |  ^^",
		"2 | bbb",
		"  | ^^^",
		"3 | ccc",
		"  | ^",
		"",
	}, "\n")

	if rendered != expected {
		t.Errorf("unexpected rendering:\n%q\nexpected:\n%q", rendered, expected)
	}
}

func TestRender_ZeroWidthSpanAtEOF(t *testing.T) {
	// No trailing newline; the span is empty at the very end of the file.
	src := "abc"

	rendered := Render(src, 3, 3, 0)

	expected := strings.Join([]string{
		"1 | abc",
		"  |    ^",
		"",
	}, "\n")

	if rendered != expected {
		t.Errorf("unexpected rendering:\n%q\nexpected:\n%q", rendered, expected)
	}
}

func TestRender_ContextWindowBounds(t *testing.T) {
	lines := []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8"}
	src := strings.Join(lines, "\n")

	// Span inside line 5; window covers lines 3 through 7.
	start := strings.Index(src, "l5")
	rendered := Render(src, start, start+2, 5)

	if strings.Contains(rendered, "l2") || strings.Contains(rendered, "l8") {
		t.Errorf("window leaked beyond two context lines:\n%s", rendered)
	}
	for _, want := range []string{"3 | l3", "7 | l7"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("expected %q inside the window:\n%s", want, rendered)
		}
	}
}

func TestRender_SpanEndingAtLineBoundary(t *testing.T) {
	src := "aaa\nbbb\nccc\nddd\neee\nfff"

	// The exclusive end offset 4 is the first byte of line 2, but the span
	// only covers line 1; the window must not slide one line further down.
	rendered := Render(src, 0, 4, 1)

	expected := strings.Join([]string{
		"1 | aaa",
		"  | ^^^",
		"2 | bbb",
		"3 | ccc",
		"",
	}, "\n")

	if rendered != expected {
		t.Errorf("unexpected rendering:\n%q\nexpected:\n%q", rendered, expected)
	}
}

func TestRender_InvalidOffsets(t *testing.T) {
	if out := Render("class A {}", -1, 4, 1); out != "" {
		t.Errorf("expected empty rendering for missing position, got %q", out)
	}
	if out := Render("class A {}", 6, 2, 1); out != "" {
		t.Errorf("expected empty rendering for inverted range, got %q", out)
	}
	if out := Render("", 0, 0, 0); out != "" {
		t.Errorf("expected empty rendering for empty source, got %q", out)
	}
}

func TestRender_Deterministic(t *testing.T) {
	src := "one\ntwo\nthree"

	first := Render(src, 4, 7, 2)
	second := Render(src, 4, 7, 2)
	if first != second {
		t.Error("rendering must be a pure transform")
	}
}
