// Package ingest seeds the store from the historical sightings spreadsheet.
//
// The import runs once, at first startup, and only when no database existed
// beforehand. Every filter is row-level and silent: a bad row is dropped and
// counted, never failing the import. The one coarse failure mode is an
// unparseable source file, which abandons the import entirely — the service
// still starts, with an empty store.
//
// Unlike the live insert endpoint, the import does not enforce the
// species/latin-name pairing. Historical rows predate that rule; whether to
// backfill them is an open product decision, so the relaxed policy stands.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/tick-sighting-api/internal/domain"
	"github.com/couchcryptid/tick-sighting-api/internal/observability"
)

// Drop reasons, also the label values on the import_dropped_total metric.
const (
	dropVocabulary  = "vocabulary"
	dropMissing     = "missing_field"
	dropBadDate     = "bad_date"
	dropOutOfWindow = "out_of_window"
	dropDuplicate   = "duplicate"
)

// Loader persists a batch of validated sightings. Satisfied by *store.Store.
type Loader interface {
	BulkInsert(ctx context.Context, sightings []domain.Sighting) error
}

// Importer filters and loads the seed spreadsheet.
type Importer struct {
	loader  Loader
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Importer.
func New(loader Loader, logger *slog.Logger, metrics *observability.Metrics) *Importer {
	return &Importer{loader: loader, logger: logger, metrics: metrics}
}

// Run imports the CSV at path and returns the number of sightings loaded.
//
// A missing file is not an error: the store stays empty. An unparseable file
// abandons the import with count 0. Row-level failures only drop the row.
func (i *Importer) Run(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			i.logger.Info("no seed file, starting with an empty store", "path", path)
			return 0, nil
		}
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := readRows(f)
	if err != nil {
		// Coarse whole-file failure: abandon the import, keep the service up.
		i.logger.Error("seed file unparseable, skipping import", "path", path, "error", err)
		return 0, nil
	}

	sightings, dropped := i.filterRows(rows)

	if err := i.loader.BulkInsert(ctx, sightings); err != nil {
		return 0, fmt.Errorf("load seed rows: %w", err)
	}

	i.metrics.SightingsImported.Add(float64(len(sightings)))
	i.logger.Info("seed import complete",
		"path", path,
		"imported", len(sightings),
		"dropped", dropped,
	)
	return len(sightings), nil
}

// rawRow is one unvalidated spreadsheet row.
type rawRow struct {
	date      string
	location  string
	species   string
	latinName string
}

// readRows parses the CSV into raw rows. The expected header is
// date,location,species,latinName; any read error fails the whole file.
func readRows(r io.Reader) ([]rawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header[0] != "date" || header[1] != "location" || header[2] != "species" || header[3] != "latinName" {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	var rows []rawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, rawRow{
			date:      record[0],
			location:  record[1],
			species:   record[2],
			latinName: record[3],
		})
	}
}

// filterRows applies the row-level filters in order: vocabulary membership,
// required fields, date parse, retention window, 4-tuple dedup.
func (i *Importer) filterRows(rows []rawRow) ([]domain.Sighting, int) {
	sightings := make([]domain.Sighting, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	dropped := 0

	drop := func(reason string, row rawRow) {
		dropped++
		i.metrics.ImportDropped.WithLabelValues(reason).Inc()
		i.logger.Debug("seed row dropped", "reason", reason, "row", fmt.Sprintf("%+v", row))
	}

	for _, row := range rows {
		if row.date == "" || row.location == "" || row.species == "" || row.latinName == "" {
			drop(dropMissing, row)
			continue
		}

		sighting := domain.Sighting{
			Location:  domain.Location(row.location),
			Species:   domain.Species(row.species),
			LatinName: domain.LatinName(row.latinName),
		}
		if err := sighting.ValidateVocabulary(); err != nil {
			drop(dropVocabulary, row)
			continue
		}

		date, err := domain.ParseDate(row.date)
		if err != nil {
			drop(dropBadDate, row)
			continue
		}
		sighting.Date = date

		if err := domain.ValidateDate(date); err != nil {
			drop(dropOutOfWindow, row)
			continue
		}

		if _, dup := seen[sighting.Key()]; dup {
			drop(dropDuplicate, row)
			continue
		}
		seen[sighting.Key()] = struct{}{}

		sightings = append(sightings, sighting)
	}

	return sightings, dropped
}
