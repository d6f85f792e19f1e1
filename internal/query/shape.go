package query

import (
	"github.com/couchcryptid/sightings-explorer/internal/domain"
)

// Shapes are folded at load time, so only the query value needs folding.

// DistinctShapes returns every non-empty shape, sorted ascending.
func (e *Engine) DistinctShapes() []string {
	e.observe(OpDistinctShapes)

	return distinctSorted(func(yield func(string) bool) {
		for _, s := range e.dataset.All() {
			if !yield(s.Shape) {
				return
			}
		}
	})
}

// CountShape counts records whose shape equals value, ignoring case.
func (e *Engine) CountShape(value string) int {
	e.observe(OpCountShape)
	return e.count(shapeIs(value))
}

// TopShapes returns the n most frequent shapes.
func (e *Engine) TopShapes(n int) []domain.Frequency[string] {
	e.observe(OpTopShapes)

	t := newTally[string]()
	for _, s := range e.dataset.All() {
		if s.Shape != "" {
			t.add(s.Shape)
		}
	}
	return t.mostCommon(n)
}

// SearchShape returns records whose shape equals value, ignoring case.
func (e *Engine) SearchShape(value string) []domain.Sighting {
	e.observe(OpSearchShape)
	return e.filter(shapeIs(value))
}

func shapeIs(value string) func(domain.Sighting) bool {
	want := domain.Fold(value)
	return func(s domain.Sighting) bool {
		return s.Shape == want
	}
}
