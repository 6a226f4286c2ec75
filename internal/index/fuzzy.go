package index

import (
	"slices"
	"strings"

	"irsearch/internal/apperrors"
)

// minSubstringLength is the shortest input that may match as a substring.
const minSubstringLength = 3

// Matcher resolves a partial or misspelled id against a set of known ids.
// Candidates are tried in order: case-insensitive exact match, ids that
// contain the input (shortest first), then ids within the edit limit.
// Remaining ties go to the lexicographically smallest id.
//
// The edit limit is MaxDistance, capped at half the input length so short
// inputs cannot reach unrelated ids.
type Matcher struct {
	MaxDistance int
}

// Match returns the best id, or false when nothing is close enough.
func (m Matcher) Match(input string, ids []string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" || len(ids) == 0 {
		return "", false
	}
	if trimmed := strings.TrimSpace(input); slices.Contains(ids, trimmed) {
		return trimmed, true
	}
	runes := len([]rune(needle))
	limit := min(m.MaxDistance, runes/2)

	best, bestRank, found := "", [2]int{}, false
	consider := func(id string, rank [2]int) {
		if !found || rank[0] < bestRank[0] ||
			(rank[0] == bestRank[0] && rank[1] < bestRank[1]) ||
			(rank == bestRank && id < best) {
			best, bestRank, found = id, rank, true
		}
	}
	for _, id := range ids {
		lower := strings.ToLower(id)
		switch {
		case lower == needle:
			consider(id, [2]int{0, 0})
		case runes >= minSubstringLength && strings.Contains(lower, needle):
			consider(id, [2]int{1, len([]rune(lower))})
		default:
			if d := Levenshtein(lower, needle); d <= limit {
				consider(id, [2]int{2, d})
			}
		}
	}
	return best, found
}

// Resolve maps id to an indexed document id, exactly or via the fuzzy
// matcher. It fails with a not-found error when no id is close enough.
func (ix *Index) Resolve(id string) (string, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.built {
		return "", apperrors.New(apperrors.ErrState, "resolve", "index not built")
	}
	if _, ok := ix.byID[id]; ok {
		return id, nil
	}
	ids := make([]string, len(ix.docs))
	for i, doc := range ix.docs {
		ids[i] = doc.ID
	}
	match, ok := ix.matcher.Match(id, ids)
	if !ok {
		return "", apperrors.Newf(apperrors.ErrNotFound, "resolve", "no document matches %q", id)
	}
	ix.logger.WithField("input", id).WithField("match", match).Debug("document id resolved")
	return match, nil
}

// Levenshtein returns the rune-level edit distance between a and b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
