package argtree

import (
	"slices"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"
)

// maxSuggestDistance bounds the edit distance of a suggested keyword.
const maxSuggestDistance = 2

// suggest returns up to limit keywords from candidates that resemble word.
//
// Candidates containing the characters of word in order are ranked by fuzzy
// match score. When none do, candidates within a small edit distance are
// used instead, closest first.
func suggest(word string, candidates []string, limit int) []string {
	if word == "" || limit <= 0 || len(candidates) == 0 {
		return nil
	}

	candidates = slices.Compact(slices.Sorted(slices.Values(candidates)))

	var out []string

	for _, match := range fuzzy.Find(word, candidates) {
		if match.Str != word {
			out = append(out, match.Str)
		}
	}

	if len(out) == 0 {
		out = closest(word, candidates)
	}

	return out[:min(len(out), limit)]
}

// closest returns the candidates within maxSuggestDistance edits of word,
// ordered by distance and then name.
func closest(word string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}

	var found []scored

	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(word, c); d <= maxSuggestDistance && d > 0 {
			found = append(found, scored{name: c, dist: d})
		}
	}

	slices.SortStableFunc(found, func(a, b scored) int { return a.dist - b.dist })

	out := make([]string, len(found))
	for i, s := range found {
		out[i] = s.name
	}

	return out
}
