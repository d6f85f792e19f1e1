package query

import "github.com/couchcryptid/sightings-explorer/internal/domain"

// CountAtLeast counts records whose duration is at least minSeconds.
func (e *Engine) CountAtLeast(minSeconds float64) int {
	e.observe(OpCountAtLeast)

	n := 0
	for _, d := range e.durations(OpCountAtLeast) {
		if d >= minSeconds {
			n++
		}
	}
	return n
}

// TopDurations returns the n most frequent distinct durations.
func (e *Engine) TopDurations(n int) []domain.Frequency[float64] {
	e.observe(OpTopDurations)

	t := newTally[float64]()
	for _, d := range e.durations(OpTopDurations) {
		t.add(d)
	}
	return t.mostCommon(n)
}

// SearchAtLeast returns the records whose duration is at least minSeconds.
// Records with malformed durations are skipped exactly as in CountAtLeast,
// so the two always agree.
func (e *Engine) SearchAtLeast(minSeconds float64) []domain.Sighting {
	e.observe(OpSearchAtLeast)

	out := []domain.Sighting{}
	for s, d := range e.durations(OpSearchAtLeast) {
		if d >= minSeconds {
			out = append(out, s)
		}
	}
	return out
}
