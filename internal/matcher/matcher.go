// Package matcher provides approximate string matching for mapping lookups.
// The matching algorithm sits behind a narrow interface so it can be
// swapped and tested independently of the store that uses it.
package matcher

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Matcher finds the best approximate match for a query among candidates.
type Matcher interface {
	// BestMatch returns the single best candidate whose similarity to the
	// query is at least cutoff (0..1). The second return value is false
	// when every candidate scores below the cutoff.
	BestMatch(query string, candidates []string, cutoff float64) (string, bool)
}

// LevenshteinMatcher scores candidates by normalized edit-distance
// similarity: 1 - distance/maxLen, case-insensitive.
type LevenshteinMatcher struct{}

// NewLevenshteinMatcher creates the default matcher implementation.
func NewLevenshteinMatcher() LevenshteinMatcher {
	return LevenshteinMatcher{}
}

// BestMatch implements Matcher.
func (LevenshteinMatcher) BestMatch(query string, candidates []string, cutoff float64) (string, bool) {
	if query == "" || len(candidates) == 0 {
		return "", false
	}

	queryLower := strings.ToLower(query)
	best := ""
	bestScore := 0.0

	for _, candidate := range candidates {
		score := Similarity(queryLower, strings.ToLower(candidate))
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if bestScore < cutoff {
		return "", false
	}
	return best, true
}

// Similarity returns a normalized similarity score in [0, 1] for two
// strings. Identical strings score 1, fully distinct strings score 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
