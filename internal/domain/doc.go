// Package domain models reported UFO sighting records.
//
// # Data Source
//
// Sightings come from a flat CSV export with one row per report. Column names
// use a dotted "Group.Field" convention, e.g. "Location.City" or
// "Data.Encounter duration". Two quirks of the export are preserved verbatim:
//
//   - The day column is spelled "Date.Sighted.Day" (no "s"), unlike its
//     siblings "Dates.Sighted.Year", "Dates.Sighted.Month", etc.
//   - The coordinate columns carry a trailing space:
//     "Location.Coordinates.Latitude " and "Location.Coordinates.Longitude ".
//
// # Normalization
//
// Each row becomes a [Sighting] with every field present. Missing columns
// degrade to "". Text fields are trimmed; only Shape is lower-cased at load
// time. City, State and Country keep their original casing and are folded
// when a query compares them.
//
// Durations stay strings. They are coerced to float64 by each query that
// needs a number, so a malformed value only affects the queries that touch it.
//
// The display timestamp is assembled textually:
//
//	year-MM-DD HH:MM  →  e.g. "2004-4-7 9:5" becomes "2004-04-07 09:05"
//
// Padding is a zero-fill to width 2. No calendar validation is performed.
//
// # Dataset
//
// A [Dataset] is built once and never mutated, so it can be shared across
// goroutines (the HTTP API) without locking.
package domain
