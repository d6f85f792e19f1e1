// Package query answers aggregate and filter questions over an immutable
// sighting dataset. Every operation is read-only and safe for concurrent use.
package query

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/couchcryptid/sightings-explorer/internal/domain"
	"github.com/couchcryptid/sightings-explorer/internal/observability"
)

// Operation names, used as metric labels and cache key prefixes.
const (
	OpTotal                = "total"
	OpCountAtLeast         = "count_at_least"
	OpTopDurations         = "top_durations"
	OpSearchAtLeast        = "search_at_least"
	OpDistinctShapes       = "distinct_shapes"
	OpCountShape           = "count_shape"
	OpTopShapes            = "top_shapes"
	OpSearchShape          = "search_shape"
	OpDistinctRegionValues = "distinct_region_values"
	OpCountRegion          = "count_region"
	OpTopRegions           = "top_regions"
	OpSearchRegion         = "search_region"
)

// Engine runs queries against a single Dataset.
type Engine struct {
	dataset *domain.Dataset
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Engine over ds. The dataset is only ever read.
func New(ds *domain.Dataset, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		dataset: ds,
		logger:  logger,
		metrics: metrics,
	}
}

// Dataset returns the dataset the engine reads from.
func (e *Engine) Dataset() *domain.Dataset {
	return e.dataset
}

// Total returns the number of records in the dataset.
func (e *Engine) Total() int {
	e.observe(OpTotal)
	return e.dataset.Len()
}

func (e *Engine) observe(op string) {
	e.metrics.Queries.WithLabelValues(op).Inc()
}

// durations yields each record whose duration coerces to a number. Empty
// durations are skipped silently; malformed ones are skipped with a warning.
func (e *Engine) durations(op string) iter.Seq2[domain.Sighting, float64] {
	return func(yield func(domain.Sighting, float64) bool) {
		for _, s := range e.dataset.All() {
			if s.DurationSeconds == "" {
				continue
			}
			d, err := domain.ParseDuration(s.DurationSeconds)
			if err != nil {
				e.logger.Warn("skipping record with malformed duration",
					"operation", op,
					"duration", s.DurationSeconds,
					"datetime", s.DateTime,
				)
				e.metrics.RecordsSkipped.WithLabelValues(op, "malformed_duration").Inc()
				continue
			}
			if !yield(s, d) {
				return
			}
		}
	}
}

// filter returns the records matching keep, in dataset order.
func (e *Engine) filter(keep func(domain.Sighting) bool) []domain.Sighting {
	out := []domain.Sighting{}
	for _, s := range e.dataset.All() {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// count returns the number of records matching keep.
func (e *Engine) count(keep func(domain.Sighting) bool) int {
	n := 0
	for _, s := range e.dataset.All() {
		if keep(s) {
			n++
		}
	}
	return n
}

func checkKind(kind domain.RegionKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRegionKind, string(kind))
	}
	return nil
}

// IsInvalidInput reports whether err was caused by a bad caller argument.
func IsInvalidInput(err error) bool {
	return errors.Is(err, domain.ErrInvalidRegionKind)
}

// Querier is the read-only query surface shared by Engine and CachedEngine.
type Querier interface {
	Total() int

	CountAtLeast(minSeconds float64) int
	TopDurations(n int) []domain.Frequency[float64]
	SearchAtLeast(minSeconds float64) []domain.Sighting

	DistinctShapes() []string
	CountShape(value string) int
	TopShapes(n int) []domain.Frequency[string]
	SearchShape(value string) []domain.Sighting

	DistinctRegionValues(kind domain.RegionKind) ([]string, error)
	CountRegion(kind domain.RegionKind, value string) (int, error)
	TopRegions(kind domain.RegionKind, n int) ([]domain.Frequency[string], error)
	SearchRegion(kind domain.RegionKind, value string) ([]domain.Sighting, error)
}

var (
	_ Querier = (*Engine)(nil)
	_ Querier = (*CachedEngine)(nil)
)

// CheckReadiness reports an error until the engine has data to query.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if e.dataset.Len() == 0 {
		return errors.New("no sightings loaded")
	}
	return nil
}
