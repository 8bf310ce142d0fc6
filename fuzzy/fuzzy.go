// Package fuzzy ranks relative-path and module-name candidates against a
// failed lookup query to produce "did you mean" suggestions.
package fuzzy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// segmentSeparator joins normalized path segments. A NUL byte cannot appear
// in a real segment, so "a/b" and "a\b" normalize to the same candidate
// while "a/b" and "ab" never do.
const segmentSeparator = "\x00"

// Config holds the matcher thresholds. The values are explicit per matcher
// instead of process-wide state so two workspaces can tune them independently.
type Config struct {
	// MinScore is the minimum similarity a candidate must reach to be
	// suggested at all. Range 0..1.
	MinScore float64

	// MaxResults caps the number of returned suggestions.
	MaxResults int
}

// DefaultConfig returns the thresholds used when a workspace doesn't
// override them.
func DefaultConfig() Config {
	return Config{
		MinScore:   0.5,
		MaxResults: 5,
	}
}

// Match is one ranked suggestion. Candidate keeps the original,
// non-normalized representation so error messages show the path the
// caller would actually use.
type Match struct {
	Candidate string
	Score     float64
}

// Matcher scores candidates against a query. Safe for concurrent use.
type Matcher struct {
	config Config
}

// NewMatcher creates a matcher with the given thresholds.
// Zero values fall back to the defaults.
func NewMatcher(config Config) *Matcher {
	if config.MinScore <= 0 {
		config.MinScore = DefaultConfig().MinScore
	}
	if config.MaxResults <= 0 {
		config.MaxResults = DefaultConfig().MaxResults
	}

	return &Matcher{config: config}
}

// Rank scores every candidate against the query, keeps those above the
// minimum score and returns at most MaxResults matches, best first.
// Equal scores keep their discovery order, so the result is deterministic
// for a fixed candidate enumeration order.
func (m *Matcher) Rank(query string, candidates []string) []Match {
	normalizedQuery := normalize(query)
	queryBase := lastSegment(query)

	matches := make([]Match, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}

		score := levenshtein.Similarity(normalizedQuery, normalize(candidate), nil)

		// A candidate whose final segment matches well is still a useful
		// suggestion even when its directory differs, so the segment
		// score can lift the whole-path score.
		if base := lastSegment(candidate); base != "" && queryBase != "" {
			if segScore := levenshtein.Similarity(queryBase, base, nil); segScore > score {
				score = segScore
			}
		}

		if score < m.config.MinScore {
			continue
		}

		matches = append(matches, Match{
			Candidate: candidate,
			Score:     score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > m.config.MaxResults {
		matches = matches[:m.config.MaxResults]
	}

	return matches
}

// FormatMiss renders the user-visible message for a failed lookup. It always
// carries guidance: either the ranked suggestions or an explicit statement
// that nothing similar was found.
func FormatMiss(what, query string, matches []Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("%s %q not found, no similar results found", what, query)
	}

	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = match.Candidate
	}

	return fmt.Sprintf("%s %q not found, did you mean: %s", what, query, strings.Join(names, ", "))
}

// normalize lowercases the query and joins its path segments with a
// separator byte that cannot occur in a real segment.
func normalize(value string) string {
	return strings.Join(splitSegments(value), segmentSeparator)
}

func lastSegment(value string) string {
	segments := splitSegments(value)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

func splitSegments(value string) []string {
	value = strings.ToLower(strings.ReplaceAll(value, "\\", "/"))

	parts := strings.Split(value, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}

	return segments
}
