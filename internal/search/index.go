package search

import (
	"sort"
	"strings"
)

const (
	// DefaultSubstringLimit caps substring suggestion output to protect
	// downstream rendering.
	DefaultSubstringLimit = 60
	// DefaultClosestLimit is the number of "did you mean" candidates.
	DefaultClosestLimit = 5
)

// Index holds the deduplicated, case-normalised set of known course codes.
// Codes keep their source order, which also breaks ranking ties.
type Index struct {
	codes []string
}

// NewIndex upper-cases, trims, and deduplicates the provided codes while
// preserving first-seen order.
func NewIndex(codes []string) *Index {
	seen := make(map[string]struct{}, len(codes))
	normalised := make([]string, 0, len(codes))
	for _, code := range codes {
		c := strings.ToUpper(strings.TrimSpace(code))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		normalised = append(normalised, c)
	}
	return &Index{codes: normalised}
}

// Len returns the number of indexed codes.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.codes)
}

// Codes returns the indexed codes in source order.
func (ix *Index) Codes() []string {
	if ix == nil {
		return nil
	}
	out := make([]string, len(ix.codes))
	copy(out, ix.codes)
	return out
}

// FilterBySubstring returns codes containing the case-normalised query as a
// substring, in index order, capped to limit. An empty query or an empty
// index yields no results.
func (ix *Index) FilterBySubstring(query string, limit int) []string {
	if ix == nil {
		return nil
	}
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSubstringLimit
	}
	results := make([]string, 0, limit)
	for _, code := range ix.codes {
		if strings.Contains(code, q) {
			results = append(results, code)
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

// NearestMatches ranks all indexed codes ascending by edit distance to the
// query, ties broken by index order, and returns the first n.
func (ix *Index) NearestMatches(query string, n int) []string {
	if ix == nil || len(ix.codes) == 0 {
		return nil
	}
	if n <= 0 {
		n = DefaultClosestLimit
	}
	q := strings.ToUpper(strings.TrimSpace(query))

	type entry struct {
		code     string
		distance int
	}
	entries := make([]entry, len(ix.codes))
	for i, code := range ix.codes {
		entries[i] = entry{code: code, distance: Distance(q, code)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].distance < entries[j].distance
	})

	if n > len(entries) {
		n = len(entries)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = entries[i].code
	}
	return out
}
