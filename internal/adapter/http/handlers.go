package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/couchcryptid/tick-sighting-api/internal/domain"
	"github.com/couchcryptid/tick-sighting-api/internal/store"
)

// handleListSightings serves GET /sightings.
//
// Query parameters: startDate, endDate, location, species (all optional),
// limit (default 10, max 500). An empty match is 200 with an empty array,
// not a 404.
func (s *Server) handleListSightings(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	limit := store.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("limit must be an integer, got %q", raw))
			return
		}
	}

	sightings, err := s.sightings.List(r.Context(), filter, limit)
	if err != nil {
		if errors.Is(err, store.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.storageError(w, "list sightings", err)
		return
	}

	writeJSON(w, http.StatusOK, sightings)
}

// handleCountByInterval serves GET /analytics/num_sightings_by_interval.
//
// interval is required (daily|weekly|monthly|yearly); location and species
// are optional filters.
func (s *Server) handleCountByInterval(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("interval")
	if raw == "" {
		writeError(w, http.StatusBadRequest, errors.New("interval is required"))
		return
	}
	interval := domain.Interval(raw)
	if !interval.IsValid() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", domain.ErrUnknownInterval, raw))
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	counts, err := s.sightings.CountByInterval(r.Context(), interval, filter)
	if err != nil {
		s.storageError(w, "count by interval", err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// handleCountByRegion serves GET /analytics/num_sightings_per_region.
// No parameters: every stored sighting is counted.
func (s *Server) handleCountByRegion(w http.ResponseWriter, r *http.Request) {
	counts, err := s.sightings.CountByRegion(r.Context())
	if err != nil {
		s.storageError(w, "count by region", err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// insertRequest is the POST /sighting body.
type insertRequest struct {
	Location  string `json:"location"`
	Species   string `json:"species"`
	LatinName string `json:"latinName"`
	Date      string `json:"date,omitempty"`
}

// handleInsertSighting serves POST /sighting.
//
// Vocabulary violations and date-window violations are 400; a species/latin
// name mismatch and a duplicate 4-tuple are 409.
func (s *Server) handleInsertSighting(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err))
		return
	}

	sighting := domain.Sighting{
		Location:  domain.Location(req.Location),
		Species:   domain.Species(req.Species),
		LatinName: domain.LatinName(req.LatinName),
	}

	if err := sighting.ValidateVocabulary(); err != nil {
		s.metrics.InsertRejections.WithLabelValues("vocabulary").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := sighting.ValidatePairing(); err != nil {
		s.metrics.InsertRejections.WithLabelValues("mismatch").Inc()
		writeError(w, http.StatusConflict, err)
		return
	}

	sighting.Date = domain.Now().UTC()
	if req.Date != "" {
		date, err := domain.ParseDate(req.Date)
		if err != nil {
			s.metrics.InsertRejections.WithLabelValues("date").Inc()
			writeError(w, http.StatusBadRequest, err)
			return
		}
		sighting.Date = date
	}
	if err := domain.ValidateDate(sighting.Date); err != nil {
		s.metrics.InsertRejections.WithLabelValues("date").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := s.sightings.Insert(r.Context(), sighting)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			s.metrics.InsertRejections.WithLabelValues("duplicate").Inc()
			writeError(w, http.StatusConflict, err)
			return
		}
		s.storageError(w, "insert sighting", err)
		return
	}

	s.metrics.SightingsInserted.Inc()
	writeJSON(w, http.StatusCreated, created)
}

// parseFilter reads the optional startDate/endDate/location/species query
// parameters, validating each against its vocabulary or date format.
func parseFilter(r *http.Request) (store.Filter, error) {
	q := r.URL.Query()
	var filter store.Filter

	if raw := q.Get("startDate"); raw != "" {
		t, err := domain.ParseDate(raw)
		if err != nil {
			return store.Filter{}, fmt.Errorf("startDate: %w", err)
		}
		filter.Start = &t
	}
	if raw := q.Get("endDate"); raw != "" {
		t, err := domain.ParseDate(raw)
		if err != nil {
			return store.Filter{}, fmt.Errorf("endDate: %w", err)
		}
		filter.End = &t
	}
	if raw := q.Get("location"); raw != "" {
		loc := domain.Location(raw)
		if !loc.IsValid() {
			return store.Filter{}, fmt.Errorf("%w: %q", domain.ErrUnknownLocation, raw)
		}
		filter.Location = &loc
	}
	if raw := q.Get("species"); raw != "" {
		sp := domain.Species(raw)
		if !sp.IsValid() {
			return store.Filter{}, fmt.Errorf("%w: %q", domain.ErrUnknownSpecies, raw)
		}
		filter.Species = &sp
	}

	return filter, nil
}

// storageError logs a failed storage call and answers 503; the fault is the
// store's, not the caller's.
func (s *Server) storageError(w http.ResponseWriter, op string, err error) {
	s.metrics.QueryErrors.Inc()
	s.logger.Error(op+" failed", "error", err)
	writeError(w, http.StatusServiceUnavailable, store.ErrUnavailable)
}
