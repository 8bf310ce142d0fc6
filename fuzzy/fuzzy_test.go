package fuzzy

import (
	"strings"
	"testing"
)

func TestRank_ClosestFirst(t *testing.T) {
	matcher := NewMatcher(DefaultConfig())
	candidates := []string{
		"com/example/Main.java",
		"com/example/Util.java",
		"org/other/Unrelated.java",
	}

	matches := matcher.Rank("com/example/Mian.java", candidates)
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}

	if matches[0].Candidate != "com/example/Main.java" {
		t.Errorf("expected closest match first, got %q", matches[0].Candidate)
	}
}

func TestRank_Deterministic(t *testing.T) {
	matcher := NewMatcher(DefaultConfig())
	candidates := []string{"alpha/one.txt", "alpha/two.txt", "alpha/ten.txt", "beta/one.txt"}

	first := matcher.Rank("alpha/onn.txt", candidates)
	second := matcher.Rank("alpha/onn.txt", candidates)

	if len(first) != len(second) {
		t.Fatalf("ranking not deterministic: %d vs %d results", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRank_ThresholdAndCap(t *testing.T) {
	matcher := NewMatcher(Config{MinScore: 0.5, MaxResults: 2})

	// All candidates are near-identical to the query, so the cap decides.
	candidates := []string{"aaaa1", "aaaa2", "aaaa3", "aaaa4"}
	matches := matcher.Rank("aaaa", candidates)
	if len(matches) != 2 {
		t.Errorf("expected cap of 2 results, got %d", len(matches))
	}

	// Nothing resembles the query at all.
	matches = matcher.Rank("zzzzzzzz", []string{"aaaa", "bbbb"})
	if len(matches) != 0 {
		t.Errorf("expected no matches below threshold, got %d", len(matches))
	}
}

func TestRank_SeparatorNormalization(t *testing.T) {
	matcher := NewMatcher(DefaultConfig())

	// Backslash and slash spellings are the same candidate...
	matches := matcher.Rank("a/b/c.txt", []string{"a\\b\\c.txt"})
	if len(matches) != 1 || matches[0].Score < 0.99 {
		t.Fatalf("expected separator styles to normalize equal, got %+v", matches)
	}

	// ...but the original representation is preserved in the result.
	if matches[0].Candidate != "a\\b\\c.txt" {
		t.Errorf("expected original candidate spelling, got %q", matches[0].Candidate)
	}
}

func TestRank_SeparatorIsNotALetter(t *testing.T) {
	matcher := NewMatcher(Config{MinScore: 0.95, MaxResults: 5})

	// "a/b" must not score as identical to "ab".
	matches := matcher.Rank("a/b", []string{"ab"})
	if len(matches) != 0 {
		t.Errorf("expected 'a/b' and 'ab' to differ, got %+v", matches)
	}
}

func TestRank_StableOrderOnTies(t *testing.T) {
	matcher := NewMatcher(Config{MinScore: 0.4, MaxResults: 5})

	// Equally distant candidates keep their discovery order.
	matches := matcher.Rank("abcd", []string{"abcx", "abcy", "abcz"})
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, expected := range []string{"abcx", "abcy", "abcz"} {
		if matches[i].Candidate != expected {
			t.Errorf("position %d: expected %q, got %q", i, expected, matches[i].Candidate)
		}
	}
}

func TestFormatMiss(t *testing.T) {
	withMatches := FormatMiss("file", "Mian.java", []Match{
		{Candidate: "Main.java", Score: 0.9},
	})
	if !strings.Contains(withMatches, "did you mean: Main.java") {
		t.Errorf("expected suggestion text, got %q", withMatches)
	}

	without := FormatMiss("file", "Nothing.java", nil)
	if !strings.Contains(without, "no similar results found") {
		t.Errorf("expected explicit no-results text, got %q", without)
	}
}
