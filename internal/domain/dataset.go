package domain

import (
	"iter"
	"slices"
	"time"
)

// Dataset is an immutable, ordered collection of sightings.
type Dataset struct {
	records  []Sighting
	source   string
	loadedAt time.Time
}

// NewDataset copies records into a new Dataset stamped with the current
// package clock time.
func NewDataset(source string, records []Sighting) *Dataset {
	return &Dataset{
		records:  slices.Clone(records),
		source:   source,
		loadedAt: Now(),
	}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the i-th record in load order.
func (d *Dataset) At(i int) Sighting {
	return d.records[i]
}

// All iterates records in load order.
func (d *Dataset) All() iter.Seq2[int, Sighting] {
	return func(yield func(int, Sighting) bool) {
		if d == nil {
			return
		}
		for i, s := range d.records {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Records returns a copy of all records.
func (d *Dataset) Records() []Sighting {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}

// Source is the path (or label) the dataset was loaded from.
func (d *Dataset) Source() string {
	if d == nil {
		return ""
	}
	return d.source
}

// LoadedAt is when the dataset was built.
func (d *Dataset) LoadedAt() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.loadedAt
}
