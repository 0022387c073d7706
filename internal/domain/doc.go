// Package domain models tick sighting records and their closed vocabularies.
//
// # Data Conventions
//
// A sighting is one observed tick event: when it was seen, in which city, and
// which species (with its Latin binomial). All three descriptive fields are
// drawn from closed vocabularies rather than free text:
//
//	Location:  14 UK cities where the recording scheme operates.
//	Species:   5 common names for the Ixodes ticks tracked by the scheme.
//	LatinName: the 5 matching binomials.
//
// Species and Latin name are not independent — each species has exactly one
// binomial (see [LatinNameFor]). The live insert path enforces the pairing;
// the historical bulk import deliberately does not (pre-scheme records were
// collected before the pairing rule existed, and the product decision on
// backfilling them is still open).
//
// # Dates
//
// Sighting dates are UTC timestamps. Accepted wire formats are RFC 3339 and
// the bare date form "2006-01-02" (the format of the historical spreadsheet).
// A date is valid at insert time when it lies inside [now-50 years, now]
// inclusive, judged against the package clock. Sightings from the future and
// sightings older than the scheme's 50-year retention window are rejected.
//
// # Intervals
//
// Analytics queries bucket sightings by a truncation of their date. The four
// granularities (daily, weekly, monthly, yearly) carry their bucket label
// formats; weekly uses ISO 8601 week numbering ("2024-W11").
package domain
