package domain

import (
	"errors"
	"fmt"
	"time"
)

// Validation failures surfaced to callers. The HTTP adapter maps these onto
// response statuses: ErrNameMismatch is a conflict, the rest are bad input.
var (
	ErrUnknownLocation  = errors.New("unknown location")
	ErrUnknownSpecies   = errors.New("unknown species")
	ErrUnknownLatinName = errors.New("unknown latin name")
	ErrUnknownInterval  = errors.New("unknown interval")
	ErrNameMismatch     = errors.New("latin name does not match species")
	ErrDateInFuture     = errors.New("date is in the future")
	ErrDateTooOld       = errors.New("date is more than 50 years old")
)

// RetentionYears is the scheme's retention window: sightings older than this
// are not accepted.
const RetentionYears = 50

// Sighting is one recorded tick observation.
type Sighting struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	Location  Location  `json:"location"`
	Species   Species   `json:"species"`
	LatinName LatinName `json:"latinName"`
}

// dateLayouts are the accepted wire formats, tried in order. The bare date
// form is what the historical spreadsheet uses.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a sighting date from its wire form into UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q (want RFC 3339 or YYYY-MM-DD)", s)
}

// ValidateDate checks that t lies within [now-50 years, now] inclusive,
// judged against the package clock.
func ValidateDate(t time.Time) error {
	now := clock.Now()
	if t.After(now) {
		return ErrDateInFuture
	}
	if t.Before(now.AddDate(-RetentionYears, 0, 0)) {
		return ErrDateTooOld
	}
	return nil
}

// ValidateVocabulary checks each field of s against its vocabulary.
// It does not check the species/latin-name pairing; see ValidatePairing.
func (s Sighting) ValidateVocabulary() error {
	if !s.Location.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, s.Location)
	}
	if !s.Species.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownSpecies, s.Species)
	}
	if !s.LatinName.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownLatinName, s.LatinName)
	}
	return nil
}

// ValidatePairing checks that the sighting's Latin name is the one paired
// with its species. Assumes the species itself is already vocabulary-valid.
func (s Sighting) ValidatePairing() error {
	want, ok := LatinNameFor(s.Species)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSpecies, s.Species)
	}
	if s.LatinName != want {
		return fmt.Errorf("%w: %s is %s, got %q", ErrNameMismatch, s.Species, want, s.LatinName)
	}
	return nil
}

// Key returns the sighting's identity 4-tuple in a comparable form, used for
// ingest-time deduplication. Matches the store's uniqueness constraint.
func (s Sighting) Key() string {
	return s.Date.UTC().Format(time.RFC3339) + "|" + string(s.Location) + "|" + string(s.Species) + "|" + string(s.LatinName)
}
