package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/couchcryptid/sightings-explorer/internal/domain"
	"github.com/couchcryptid/sightings-explorer/internal/query"
)

const defaultTopN = 10

// queryHandlers serves the read-only /api/v1 routes.
type queryHandlers struct {
	q      query.Querier
	logger *slog.Logger
}

type countResponse struct {
	Count   int               `json:"count"`
	Results []domain.Sighting `json:"results"`
}

func (h *queryHandlers) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"total": h.q.Total()})
}

func (h *queryHandlers) searchDurations(w http.ResponseWriter, r *http.Request) {
	minSeconds, err := floatParam(r, "min", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	results := h.q.SearchAtLeast(minSeconds)
	writeJSON(w, http.StatusOK, countResponse{Count: len(results), Results: results})
}

func (h *queryHandlers) topDurations(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "n", defaultTopN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.q.TopDurations(n))
}

func (h *queryHandlers) distinctShapes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.q.DistinctShapes())
}

func (h *queryHandlers) topShapes(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "n", defaultTopN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.q.TopShapes(n))
}

func (h *queryHandlers) searchShape(w http.ResponseWriter, r *http.Request) {
	results := h.q.SearchShape(r.PathValue("shape"))
	writeJSON(w, http.StatusOK, countResponse{Count: len(results), Results: results})
}

func (h *queryHandlers) distinctRegions(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.regionKind(w, r)
	if !ok {
		return
	}
	values, err := h.q.DistinctRegionValues(kind)
	if err != nil {
		h.queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (h *queryHandlers) topRegions(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.regionKind(w, r)
	if !ok {
		return
	}
	n, err := intParam(r, "n", defaultTopN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	top, err := h.q.TopRegions(kind, n)
	if err != nil {
		h.queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

func (h *queryHandlers) searchRegion(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.regionKind(w, r)
	if !ok {
		return
	}
	results, err := h.q.SearchRegion(kind, r.PathValue("value"))
	if err != nil {
		h.queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: len(results), Results: results})
}

func (h *queryHandlers) regionKind(w http.ResponseWriter, r *http.Request) (domain.RegionKind, bool) {
	kind, err := domain.ParseRegionKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return kind, true
}

func (h *queryHandlers) queryError(w http.ResponseWriter, err error) {
	if query.IsInvalidInput(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("query failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func intParam(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", name, s)
	}
	return n, nil
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", name, s)
	}
	return v, nil
}
