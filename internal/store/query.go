package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/tick-sighting-api/internal/domain"
)

// Listing limits. Values outside [1, MaxLimit] are rejected, never clamped.
const (
	DefaultLimit = 10
	MaxLimit     = 500
)

// ErrInvalidLimit is returned by List for limits outside [1, MaxLimit].
var ErrInvalidLimit = fmt.Errorf("limit must be between 1 and %d", MaxLimit)

// Filter is an optional conjunction of sighting predicates. Nil fields are
// absent; present fields must already be vocabulary-validated by the caller.
type Filter struct {
	Start    *time.Time
	End      *time.Time
	Location *domain.Location
	Species  *domain.Species
}

// clauses renders the filter as a WHERE fragment with bound parameters.
// Returns an empty string when no predicate is present.
func (f Filter) clauses() (string, []any) {
	var (
		preds []string
		args  []any
	)
	if f.Start != nil {
		preds = append(preds, "date >= ?")
		args = append(args, formatDate(*f.Start))
	}
	if f.End != nil {
		preds = append(preds, "date <= ?")
		args = append(args, formatDate(*f.End))
	}
	if f.Location != nil {
		preds = append(preds, "location = ?")
		args = append(args, string(*f.Location))
	}
	if f.Species != nil {
		preds = append(preds, "species = ?")
		args = append(args, string(*f.Species))
	}
	if len(preds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(preds, " AND "), args
}

// List returns sightings matching every present predicate, ordered by date
// then id, capped at limit rows.
func (s *Store) List(ctx context.Context, f Filter, limit int) ([]domain.Sighting, error) {
	if limit < 1 || limit > MaxLimit {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	where, args := f.clauses()
	q := `SELECT id, date, location, species, latin_name FROM tick_sightings` +
		where + ` ORDER BY date, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrapUnavailable("list sightings", err)
	}
	defer func() { _ = rows.Close() }()

	sightings := []domain.Sighting{}
	for rows.Next() {
		var (
			sighting domain.Sighting
			date     string
		)
		if err := rows.Scan(&sighting.ID, &date, &sighting.Location, &sighting.Species, &sighting.LatinName); err != nil {
			return nil, wrapUnavailable("scan sighting", err)
		}
		sighting.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", date, err)
		}
		sightings = append(sightings, sighting)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapUnavailable("list sightings", err)
	}
	return sightings, nil
}

// IntervalCount is one time bucket and the number of sightings in it.
type IntervalCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// CountByInterval buckets matching sightings by a truncation of their date to
// the given granularity and returns one row per bucket, ascending by bucket
// label. No row limit applies. The interval must be vocabulary-valid.
func (s *Store) CountByInterval(ctx context.Context, interval domain.Interval, f Filter) ([]IntervalCount, error) {
	if !interval.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownInterval, interval)
	}

	where, args := f.clauses()
	// The layout comes from a closed enum, never from user input.
	q := fmt.Sprintf(
		`SELECT strftime('%s', date) AS bucket, COUNT(*) FROM tick_sightings%s GROUP BY bucket ORDER BY bucket`,
		interval.BucketLayout(), where,
	)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrapUnavailable("count by interval", err)
	}
	defer func() { _ = rows.Close() }()

	counts := []IntervalCount{}
	for rows.Next() {
		var c IntervalCount
		if err := rows.Scan(&c.Bucket, &c.Count); err != nil {
			return nil, wrapUnavailable("scan interval count", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapUnavailable("count by interval", err)
	}
	return counts, nil
}

// RegionCount is one location and its total sighting count.
type RegionCount struct {
	Location domain.Location `json:"location"`
	Count    int             `json:"count"`
}

// CountByRegion groups all sightings by location. No filters or limit apply;
// result order is unspecified.
func (s *Store) CountByRegion(ctx context.Context) ([]RegionCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT location, COUNT(*) FROM tick_sightings GROUP BY location`)
	if err != nil {
		return nil, wrapUnavailable("count by region", err)
	}
	defer func() { _ = rows.Close() }()

	counts := []RegionCount{}
	for rows.Next() {
		var c RegionCount
		if err := rows.Scan(&c.Location, &c.Count); err != nil {
			return nil, wrapUnavailable("scan region count", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapUnavailable("count by region", err)
	}
	return counts, nil
}
