package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sightings-explorer/internal/domain"
	"github.com/couchcryptid/sightings-explorer/internal/observability"
)

const (
	testCircle   = "circle"
	testTriangle = "triangle"
	testParis    = "paris"
)

// --- fixtures ---

func newTestEngine(t *testing.T, records ...domain.Sighting) (*Engine, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	ds := domain.NewDataset("test", records)
	return New(ds, observability.DiscardLogger(), metrics), metrics
}

func sighting(shape, duration string) domain.Sighting {
	return domain.NormalizeRow(domain.Row{
		domain.ColShape:    shape,
		domain.ColDuration: duration,
	})
}

func placed(city, state, country string) domain.Sighting {
	return domain.NormalizeRow(domain.Row{
		domain.ColCity:    city,
		domain.ColState:   state,
		domain.ColCountry: country,
	})
}

// --- total ---

func TestTotal(t *testing.T) {
	e, metrics := newTestEngine(t, sighting("disk", "1"), sighting("light", "2"))

	assert.Equal(t, 2, e.Total())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Queries.WithLabelValues(OpTotal)), 0)
}

func TestTotal_Empty(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Equal(t, 0, e.Total())
}

// --- durations ---

func TestTopDurations_Example(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("", "60"),
		sighting("", "60"),
		sighting("", "120"),
	)

	got := e.TopDurations(1)

	want := []domain.Frequency[float64]{{Value: 60, Count: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopDurations mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, e.CountAtLeast(100))
}

func TestTopDurations_EquivalentLiteralsMerge(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("", "60"),
		sighting("", "60.0"),
		sighting("", "6e1"),
	)

	got := e.TopDurations(5)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Frequency[float64]{Value: 60, Count: 3}, got[0])
}

func TestTopDurations_TieBreakFirstSeen(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("", "30"),
		sighting("", "10"),
		sighting("", "10"),
		sighting("", "20"),
		sighting("", "30"),
		sighting("", "20"),
	)

	got := e.TopDurations(3)

	want := []domain.Frequency[float64]{
		{Value: 30, Count: 2},
		{Value: 10, Count: 2},
		{Value: 20, Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopDurations mismatch (-want +got):\n%s", diff)
	}
}

func TestTopDurations_Bounds(t *testing.T) {
	e, _ := newTestEngine(t, sighting("", "1"), sighting("", "2"))

	assert.Empty(t, e.TopDurations(0))
	assert.Empty(t, e.TopDurations(-3))
	assert.NotNil(t, e.TopDurations(0))
	assert.Len(t, e.TopDurations(10), 2)
}

func TestDurations_MalformedSkipped(t *testing.T) {
	e, metrics := newTestEngine(t,
		sighting("", "60"),
		sighting("", "a while"),
		sighting("", ""),
		sighting("", "NaN"),
		sighting("", "300"),
	)

	assert.Equal(t, 2, e.CountAtLeast(0))
	assert.Len(t, e.SearchAtLeast(0), 2)
	assert.Len(t, e.TopDurations(10), 2)

	// "a while" and "NaN" are malformed; the empty duration is skipped silently.
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.RecordsSkipped.WithLabelValues(OpCountAtLeast, "malformed_duration")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.RecordsSkipped.WithLabelValues(OpSearchAtLeast, "malformed_duration")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.RecordsSkipped.WithLabelValues(OpTopDurations, "malformed_duration")), 0)
}

func TestCountAtLeast_MatchesSearch(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("", "5"),
		sighting("", "60"),
		sighting("", "61.5"),
		sighting("", "bogus"),
		sighting("", "3600"),
	)

	for _, m := range []float64{-1, 0, 5, 60, 61.5, 100, 3600, 1e9} {
		assert.Equal(t, e.CountAtLeast(m), len(e.SearchAtLeast(m)), "min=%v", m)
	}
}

func TestSearchAtLeast_PreservesOrder(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("a", "100"),
		sighting("b", "5"),
		sighting("c", "200"),
		sighting("d", "150"),
	)

	var shapes []string
	for _, s := range e.SearchAtLeast(100) {
		shapes = append(shapes, s.Shape)
	}
	assert.Equal(t, []string{"a", "c", "d"}, shapes)
}

// --- shapes ---

func TestDistinctShapes_Example(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("circle", ""),
		sighting("Circle ", ""),
		sighting("triangle", ""),
	)

	assert.Equal(t, []string{testCircle, testTriangle}, e.DistinctShapes())
	assert.Equal(t, 2, e.CountShape(testCircle))
}

func TestDistinctShapes_SortedUniqueNonEmpty(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("light", ""),
		sighting("", ""),
		sighting("DISK", ""),
		sighting("light", ""),
		sighting("cigar", ""),
	)

	assert.Equal(t, []string{"cigar", "disk", "light"}, e.DistinctShapes())
}

func TestCountShape_CaseInsensitive(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("circle", ""),
		sighting("CIRCLE", ""),
		sighting("disk", ""),
	)

	lower := e.CountShape("circle")
	assert.Equal(t, 2, lower)
	assert.Equal(t, lower, e.CountShape("Circle"))
	assert.Equal(t, lower, e.CountShape("CIRCLE"))
	assert.Equal(t, lower, e.CountShape("  circle "))
	assert.Equal(t, 0, e.CountShape("cylinder"))
}

func TestTopShapes(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("light", ""),
		sighting("disk", ""),
		sighting("disk", ""),
		sighting("", ""),
		sighting("", ""),
		sighting("", ""),
		sighting("light", ""),
		sighting("fireball", ""),
	)

	want := []domain.Frequency[string]{
		{Value: "light", Count: 2},
		{Value: "disk", Count: 2},
	}
	if diff := cmp.Diff(want, e.TopShapes(2)); diff != "" {
		t.Errorf("TopShapes mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, e.TopShapes(0))
	assert.Len(t, e.TopShapes(100), len(e.DistinctShapes()))
}

func TestSearchShape_Idempotent(t *testing.T) {
	e, _ := newTestEngine(t,
		sighting("circle", "1"),
		sighting("disk", "2"),
		sighting("Circle", "3"),
	)

	once := e.SearchShape("CIRCLE")
	require.Len(t, once, 2)
	assert.Equal(t, "1", once[0].DurationSeconds)
	assert.Equal(t, "3", once[1].DurationSeconds)

	again, _ := newTestEngine(t, once...)
	if diff := cmp.Diff(once, again.SearchShape("circle")); diff != "" {
		t.Errorf("re-filter changed result (-once +twice):\n%s", diff)
	}
}

// --- regions ---

func TestRegions_Independent(t *testing.T) {
	e, _ := newTestEngine(t,
		placed("Paris", "TX", "US"),
		placed("Dallas", "Paris", "US"),
		placed("Lyon", "ARA", "Paris"),
		placed("PARIS", "", "FR"),
	)

	results, err := e.SearchRegion(domain.RegionCity, testParis)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, s := range results {
		assert.Equal(t, testParis, domain.Fold(s.City))
	}

	n, err := e.CountRegion(domain.RegionState, "PARIS")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = e.CountRegion(domain.RegionCountry, "paris")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDistinctRegionValues(t *testing.T) {
	e, _ := newTestEngine(t,
		placed("Austin", "TX", "us"),
		placed("austin", "tx", "US"),
		placed("", "OK", "US"),
		placed("Boston", "MA", "US"),
	)

	cities, err := e.DistinctRegionValues(domain.RegionCity)
	require.NoError(t, err)
	assert.Equal(t, []string{"austin", "boston"}, cities)

	states, err := e.DistinctRegionValues(domain.RegionState)
	require.NoError(t, err)
	assert.Equal(t, []string{"ma", "ok", "tx"}, states)

	countries, err := e.DistinctRegionValues(domain.RegionCountry)
	require.NoError(t, err)
	assert.Equal(t, []string{"us"}, countries)
}

func TestTopRegions(t *testing.T) {
	e, _ := newTestEngine(t,
		placed("Seattle", "WA", "US"),
		placed("Phoenix", "AZ", "US"),
		placed("PHOENIX", "AZ", "US"),
		placed("", "", ""),
		placed("seattle", "WA", "US"),
		placed("Tucson", "AZ", "US"),
	)

	top, err := e.TopRegions(domain.RegionCity, 2)
	require.NoError(t, err)
	want := []domain.Frequency[string]{
		{Value: "seattle", Count: 2},
		{Value: "phoenix", Count: 2},
	}
	if diff := cmp.Diff(want, top); diff != "" {
		t.Errorf("TopRegions mismatch (-want +got):\n%s", diff)
	}

	top, err = e.TopRegions(domain.RegionState, 0)
	require.NoError(t, err)
	assert.Empty(t, top)

	top, err = e.TopRegions(domain.RegionCountry, 5)
	require.NoError(t, err)
	assert.Equal(t, []domain.Frequency[string]{{Value: "us", Count: 5}}, top)
}

func TestRegions_InvalidKind(t *testing.T) {
	e, _ := newTestEngine(t, placed("Paris", "TX", "US"))
	kind := domain.RegionKind("county")

	_, err := e.DistinctRegionValues(kind)
	require.ErrorIs(t, err, domain.ErrInvalidRegionKind)
	assert.True(t, IsInvalidInput(err))

	_, err = e.CountRegion(kind, "x")
	require.ErrorIs(t, err, domain.ErrInvalidRegionKind)

	_, err = e.TopRegions(kind, 1)
	require.ErrorIs(t, err, domain.ErrInvalidRegionKind)

	_, err = e.SearchRegion(kind, "x")
	require.ErrorIs(t, err, domain.ErrInvalidRegionKind)
}

func TestQueries_DoNotMutateDataset(t *testing.T) {
	e, _ := newTestEngine(t, placed("Paris", "TX", "US"), sighting("Disk", "10"))
	before := e.Dataset().Records()

	results, err := e.SearchRegion(domain.RegionCity, "paris")
	require.NoError(t, err)
	results[0].City = "changed"
	_ = e.SearchShape("disk")
	_ = e.TopDurations(3)

	if diff := cmp.Diff(before, e.Dataset().Records()); diff != "" {
		t.Errorf("dataset mutated (-before +after):\n%s", diff)
	}
}
