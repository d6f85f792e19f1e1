package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDuration is returned when a duration cannot be coerced to a number.
	ErrMalformedDuration = errors.New("malformed duration")

	// ErrInvalidRegionKind is returned for region kinds other than city, state or country.
	ErrInvalidRegionKind = errors.New("invalid region kind")
)

// Sighting is one normalized report. All fields are always present; absent
// source columns are stored as "".
type Sighting struct {
	City            string `json:"city" yaml:"city"`
	State           string `json:"state" yaml:"state"`
	Country         string `json:"country" yaml:"country"`
	Shape           string `json:"shape" yaml:"shape"`                           // trimmed, lower-cased
	DurationSeconds string `json:"duration (seconds)" yaml:"duration (seconds)"` // raw numeric literal or ""
	DateTime        string `json:"datetime" yaml:"datetime"`                     // display only, never parsed
	Latitude        string `json:"latitude" yaml:"latitude"`
	Longitude       string `json:"longitude" yaml:"longitude"`
	Description     string `json:"description" yaml:"description"`
}

// Region returns the field selected by kind. Unknown kinds yield "".
func (s Sighting) Region(kind RegionKind) string {
	switch kind {
	case RegionCity:
		return s.City
	case RegionState:
		return s.State
	case RegionCountry:
		return s.Country
	default:
		return ""
	}
}

// RegionKind selects one of the geographic fields of a Sighting.
type RegionKind string

const (
	RegionCity    RegionKind = "city"
	RegionState   RegionKind = "state"
	RegionCountry RegionKind = "country"
)

// RegionKinds lists the accepted region kinds in menu order.
var RegionKinds = []RegionKind{RegionCity, RegionState, RegionCountry}

// Valid reports whether k is one of the known region kinds.
func (k RegionKind) Valid() bool {
	switch k {
	case RegionCity, RegionState, RegionCountry:
		return true
	default:
		return false
	}
}

// ParseRegionKind accepts "city", "state" or "country" in any case.
func ParseRegionKind(s string) (RegionKind, error) {
	k := RegionKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRegionKind, s)
	}
	return k, nil
}

// Frequency pairs a distinct value with its number of occurrences.
type Frequency[K comparable] struct {
	Value K   `json:"value" yaml:"value"`
	Count int `json:"count" yaml:"count"`
}
