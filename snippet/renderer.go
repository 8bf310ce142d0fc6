// Package snippet renders line-numbered, caret-underlined source excerpts
// for diagnostic reporting.
package snippet

import (
	"fmt"
	"strings"
)

// contextLines is the number of lines shown before the start line and
// after the end line of the reported range.
const contextLines = 2

// line is one source line with its byte range (end excludes the newline).
type line struct {
	number int
	start  int
	end    int
}

// Render extracts a bounded window of source lines around the byte range
// [startOffset, endOffset) and renders each with a left-padded line-number
// gutter. Every line whose byte range intersects the offsets gets a second
// line of '^' carets under exactly the columns inside the range, clamped
// to the line's own bounds. A zero-width range still renders one caret.
//
// startLine is the reported 1-based start line and anchors the window;
// pass 0 to derive it from startOffset. Returns "" when the offsets don't
// describe a valid range, so callers fall back to the bare message.
func Render(src string, startOffset, endOffset, startLine int) string {
	if startOffset < 0 || endOffset < startOffset || startOffset > len(src) {
		return ""
	}
	if endOffset > len(src) {
		endOffset = len(src)
	}

	lines := splitLines(src)
	if len(lines) == 0 {
		return ""
	}

	if startLine <= 0 {
		startLine = lineAt(lines, startOffset)
	}
	// endOffset is exclusive; anchor the window on the last byte actually
	// covered, not on whatever line the boundary lands in.
	endLine := startLine
	if endOffset > startOffset {
		endLine = lineAt(lines, endOffset-1)
	}
	if endLine < startLine {
		endLine = startLine
	}

	first := max(startLine-contextLines, 1)
	last := min(endLine+contextLines, len(lines))

	gutter := len(fmt.Sprint(last))

	var b strings.Builder
	for _, ln := range lines[first-1 : last] {
		text := src[ln.start:ln.end]
		fmt.Fprintf(&b, "%*d | %s\n", gutter, ln.number, text)

		carets := caretsFor(ln, startOffset, endOffset)
		if carets == "" {
			continue
		}
		fmt.Fprintf(&b, "%s | %s\n", strings.Repeat(" ", gutter), carets)
	}

	return b.String()
}

// caretsFor returns the caret underline for one line, or "" when the line
// doesn't intersect the reported range.
func caretsFor(ln line, startOffset, endOffset int) string {
	if startOffset == endOffset {
		// Zero-width span: one caret on the line containing the offset.
		if startOffset < ln.start || startOffset > ln.end {
			return ""
		}
		return strings.Repeat(" ", startOffset-ln.start) + "^"
	}

	if startOffset >= ln.end || endOffset <= ln.start {
		return ""
	}

	from := max(startOffset, ln.start) - ln.start
	to := min(endOffset, ln.end) - ln.start
	if to <= from {
		// Range touches the line only at its newline; still mark it.
		to = from + 1
	}

	return strings.Repeat(" ", from) + strings.Repeat("^", to-from)
}

// splitLines computes the byte range of every line. The final line may
// have no trailing newline.
func splitLines(src string) []line {
	var lines []line

	start := 0
	number := 1
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, line{number: number, start: start, end: i})
			start = i + 1
			number++
		}
	}
	if start < len(src) {
		lines = append(lines, line{number: number, start: start, end: len(src)})
	}

	return lines
}

// lineAt returns the 1-based number of the line containing the offset.
// Offsets past the final line clamp to it.
func lineAt(lines []line, offset int) int {
	for _, ln := range lines {
		if offset <= ln.end {
			return ln.number
		}
	}
	return len(lines)
}
