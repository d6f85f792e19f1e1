package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Source column names as they appear in the CSV header. The day column and
// the trailing spaces on the coordinate columns are quirks of the export.
const (
	ColCity        = "Location.City"
	ColState       = "Location.State"
	ColCountry     = "Location.Country"
	ColShape       = "Data.Shape"
	ColDuration    = "Data.Encounter duration"
	ColYear        = "Dates.Sighted.Year"
	ColMonth       = "Dates.Sighted.Month"
	ColDay         = "Date.Sighted.Day"
	ColHour        = "Dates.Sighted.Hour"
	ColMinute      = "Dates.Sighted.Minute"
	ColLatitude    = "Location.Coordinates.Latitude "
	ColLongitude   = "Location.Coordinates.Longitude "
	ColDescription = "Data.Description excerpt"
)

// Row is one CSV data row keyed by header name.
type Row map[string]string

// get returns the cell for col, or "" when the column is absent.
func (r Row) get(col string) string {
	return r[col]
}

// NormalizeRow maps a raw row to a Sighting. It never fails: absent columns
// become "" and no numeric validation is done.
func NormalizeRow(row Row) Sighting {
	return Sighting{
		City:            strings.TrimSpace(row.get(ColCity)),
		State:           strings.TrimSpace(row.get(ColState)),
		Country:         strings.TrimSpace(row.get(ColCountry)),
		Shape:           Fold(row.get(ColShape)),
		DurationSeconds: strings.TrimSpace(row.get(ColDuration)),
		DateTime: assembleDateTime(
			row.get(ColYear),
			row.get(ColMonth),
			row.get(ColDay),
			row.get(ColHour),
			row.get(ColMinute),
		),
		Latitude:    strings.TrimSpace(row.get(ColLatitude)),
		Longitude:   strings.TrimSpace(row.get(ColLongitude)),
		Description: strings.TrimSpace(row.get(ColDescription)),
	}
}

// Fold trims and lower-cases s for case-insensitive comparison.
// A new Caser is built per call because Casers are not safe for concurrent use.
func Fold(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// assembleDateTime builds "YYYY-MM-DD HH:MM" by concatenation. Month, day,
// hour and minute are zero-filled to two characters; the year is used as-is.
func assembleDateTime(year, month, day, hour, minute string) string {
	return fmt.Sprintf("%s-%s-%s %s:%s",
		year, zeroFill(month, 2), zeroFill(day, 2), zeroFill(hour, 2), zeroFill(minute, 2))
}

// zeroFill left-pads s with '0' up to width characters, keeping a leading
// sign in front of the padding ("-5" stays "-5", "5" becomes "05").
func zeroFill(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	pad := strings.Repeat("0", width-n)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[:1] + pad + s[1:]
	}
	return pad + s
}

// ParseDuration coerces a duration literal to seconds. NaN is rejected since
// it cannot be compared or counted.
func ParseDuration(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
	}
	return v, nil
}
