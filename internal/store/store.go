// Package store persists sightings in a single SQLite table and executes the
// read queries against it. All user-supplied values travel as bound
// parameters; statement text is composed only from fixed keywords and
// identifiers.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/tick-sighting-api/internal/domain"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

var (
	// ErrDuplicate is returned when an insert collides with the
	// (date, location, species, latin_name) uniqueness constraint.
	ErrDuplicate = errors.New("duplicate sighting")

	// ErrUnavailable is returned when the database cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")
)

// Store is a SQLite-backed sighting repository sharing one pooled *sql.DB.
type Store struct {
	db *sql.DB
}

// Exists reports whether a database file is already present at path. Used to
// gate the one-time seed import before Open creates the file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Open opens (creating if needed) the SQLite database at path and bootstraps
// the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db path: %w", err)
		}
	}

	// DSN notes:
	// - _pragma=busy_timeout sets a lock wait
	// - _pragma=journal_mode(WAL) enables the write-ahead log
	// - _pragma=synchronous(NORMAL) is the recommended sync mode with WAL
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(path))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS tick_sightings (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		date       TEXT NOT NULL,
		location   TEXT NOT NULL,
		species    TEXT NOT NULL,
		latin_name TEXT NOT NULL,
		UNIQUE (date, location, species, latin_name)
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sightings table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CheckReadiness pings the database; nil means the store can serve traffic.
func (s *Store) CheckReadiness(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Insert writes one sighting and returns it with the store-assigned id.
// A collision with the uniqueness constraint returns ErrDuplicate.
func (s *Store) Insert(ctx context.Context, sighting domain.Sighting) (domain.Sighting, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tick_sightings (date, location, species, latin_name) VALUES (?, ?, ?, ?)`,
		formatDate(sighting.Date), string(sighting.Location), string(sighting.Species), string(sighting.LatinName),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Sighting{}, fmt.Errorf("%w: %s", ErrDuplicate, sighting.Key())
		}
		return domain.Sighting{}, wrapUnavailable("insert sighting", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Sighting{}, wrapUnavailable("insert sighting id", err)
	}
	sighting.ID = id
	return sighting, nil
}

// BulkInsert writes all sightings in one transaction. Callers are expected to
// have deduplicated the slice already; any constraint hit aborts the batch.
func (s *Store) BulkInsert(ctx context.Context, sightings []domain.Sighting) error {
	if len(sightings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapUnavailable("begin bulk insert", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tick_sightings (date, location, species, latin_name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return wrapUnavailable("prepare bulk insert", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, sighting := range sightings {
		if _, err := stmt.ExecContext(ctx,
			formatDate(sighting.Date), string(sighting.Location), string(sighting.Species), string(sighting.LatinName),
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", ErrDuplicate, sighting.Key())
			}
			return wrapUnavailable("bulk insert sighting", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapUnavailable("commit bulk insert", err)
	}
	return nil
}

// Count returns the total number of stored sightings.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tick_sightings`).Scan(&n); err != nil {
		return 0, wrapUnavailable("count sightings", err)
	}
	return n, nil
}

// formatDate stores dates as RFC 3339 UTC text so that lexical comparison and
// strftime bucketing both work directly in SQL.
func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// isUniqueViolation matches the driver's constraint error text; the modernc
// driver does not expose a stable typed error for this.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func wrapUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
