package query

import (
	"iter"
	"slices"

	"github.com/couchcryptid/sightings-explorer/internal/domain"
)

// tally counts values while remembering the order in which each distinct
// value was first seen.
type tally[K comparable] struct {
	counts map[K]int
	order  []K
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{counts: make(map[K]int)}
}

func (t *tally[K]) add(v K) {
	if _, ok := t.counts[v]; !ok {
		t.order = append(t.order, v)
	}
	t.counts[v]++
}

// mostCommon returns up to n entries by descending count. Equal counts keep
// first-seen order. n <= 0 yields an empty slice.
func (t *tally[K]) mostCommon(n int) []domain.Frequency[K] {
	if n <= 0 {
		return []domain.Frequency[K]{}
	}

	out := make([]domain.Frequency[K], 0, len(t.order))
	for _, v := range t.order {
		out = append(out, domain.Frequency[K]{Value: v, Count: t.counts[v]})
	}
	slices.SortStableFunc(out, func(a, b domain.Frequency[K]) int {
		return b.Count - a.Count
	})

	if n < len(out) {
		out = out[:n]
	}
	return out
}

// distinctSorted returns the unique non-empty values of vals in ascending order.
func distinctSorted(vals iter.Seq[string]) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for v := range vals {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
