package query

import (
	"github.com/couchcryptid/sightings-explorer/internal/domain"
)

// Region fields keep their original casing, so both sides are folded here.

// DistinctRegionValues returns the folded, non-empty values of the selected
// field, sorted ascending.
func (e *Engine) DistinctRegionValues(kind domain.RegionKind) ([]string, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	e.observe(OpDistinctRegionValues)

	return distinctSorted(func(yield func(string) bool) {
		for _, s := range e.dataset.All() {
			if !yield(domain.Fold(s.Region(kind))) {
				return
			}
		}
	}), nil
}

// CountRegion counts records whose selected field equals value, ignoring case.
func (e *Engine) CountRegion(kind domain.RegionKind, value string) (int, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	e.observe(OpCountRegion)
	return e.count(regionIs(kind, value)), nil
}

// TopRegions returns the n most frequent folded values of the selected field.
func (e *Engine) TopRegions(kind domain.RegionKind, n int) ([]domain.Frequency[string], error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	e.observe(OpTopRegions)

	t := newTally[string]()
	for _, s := range e.dataset.All() {
		if v := domain.Fold(s.Region(kind)); v != "" {
			t.add(v)
		}
	}
	return t.mostCommon(n), nil
}

// SearchRegion returns records whose selected field equals value, ignoring case.
func (e *Engine) SearchRegion(kind domain.RegionKind, value string) ([]domain.Sighting, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	e.observe(OpSearchRegion)
	return e.filter(regionIs(kind, value)), nil
}

func regionIs(kind domain.RegionKind, value string) func(domain.Sighting) bool {
	want := domain.Fold(value)
	return func(s domain.Sighting) bool {
		return domain.Fold(s.Region(kind)) == want
	}
}
