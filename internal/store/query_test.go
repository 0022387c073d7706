package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/couchcryptid/tick-sighting-api/internal/domain"
	"github.com/couchcryptid/tick-sighting-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// seedFixture loads a known set of sightings:
//
//	2024-03-15 London  Sheep tick
//	2024-03-16 London  Marsh tick
//	2024-04-01 Leeds   Sheep tick
//	2024-04-02 Leeds   Fox tick
//	2025-01-10 London  Sheep tick
func seedFixture(t *testing.T, s *store.Store) {
	t.Helper()
	batch := []domain.Sighting{
		sightingOn(day(2024, 3, 15), domain.LocationLondon, domain.SpeciesSheepTick, domain.LatinRicinus),
		sightingOn(day(2024, 3, 16), domain.LocationLondon, domain.SpeciesMarshTick, domain.LatinApronophorus),
		sightingOn(day(2024, 4, 1), domain.LocationLeeds, domain.SpeciesSheepTick, domain.LatinRicinus),
		sightingOn(day(2024, 4, 2), domain.LocationLeeds, domain.SpeciesFoxTick, domain.LatinCanisuga),
		sightingOn(day(2025, 1, 10), domain.LocationLondon, domain.SpeciesSheepTick, domain.LatinRicinus),
	}
	require.NoError(t, s.BulkInsert(context.Background(), batch))
}

func TestListNoFilters(t *testing.T) {
	s := openTestStore(t)
	seedFixture(t, s)

	got, err := s.List(context.Background(), store.Filter{}, store.DefaultLimit)
	require.NoError(t, err)
	require.Len(t, got, 5)

	// Ascending by date.
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.Before(got[i-1].Date))
	}
}

func TestListFilterCombinations(t *testing.T) {
	s := openTestStore(t)
	seedFixture(t, s)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter store.Filter
		want   int
	}{
		{"start date inclusive", store.Filter{Start: ptr(day(2024, 4, 1))}, 3},
		{"end date inclusive", store.Filter{End: ptr(day(2024, 3, 16))}, 2},
		{"date range", store.Filter{Start: ptr(day(2024, 3, 1)), End: ptr(day(2024, 4, 30))}, 4},
		{"location", store.Filter{Location: ptr(domain.LocationLondon)}, 3},
		{"species", store.Filter{Species: ptr(domain.SpeciesSheepTick)}, 3},
		{"location and species", store.Filter{Location: ptr(domain.LocationLondon), Species: ptr(domain.SpeciesSheepTick)}, 2},
		{"all predicates", store.Filter{
			Start:    ptr(day(2024, 1, 1)),
			End:      ptr(day(2024, 12, 31)),
			Location: ptr(domain.LocationLondon),
			Species:  ptr(domain.SpeciesSheepTick),
		}, 1},
		{"no match is empty, not an error", store.Filter{Location: ptr(domain.LocationBelfast)}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.List(ctx, tc.filter, store.MaxLimit)
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
		})
	}
}

func TestListLimitBounds(t *testing.T) {
	s := openTestStore(t)
	seedFixture(t, s)
	ctx := context.Background()

	t.Run("limit caps rows", func(t *testing.T) {
		got, err := s.List(ctx, store.Filter{}, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("boundary values succeed", func(t *testing.T) {
		for _, limit := range []int{1, store.MaxLimit} {
			_, err := s.List(ctx, store.Filter{}, limit)
			assert.NoError(t, err, "limit %d", limit)
		}
	})

	t.Run("out-of-range values are rejected, not clamped", func(t *testing.T) {
		for _, limit := range []int{0, -1, store.MaxLimit + 1} {
			_, err := s.List(ctx, store.Filter{}, limit)
			assert.ErrorIs(t, err, store.ErrInvalidLimit, "limit %d", limit)
		}
	})
}

func TestCountByInterval(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// One record; its bucket label per granularity is the interesting part.
	_, err := s.Insert(ctx, sightingOn(day(2024, 3, 15), domain.LocationLondon, domain.SpeciesSheepTick, domain.LatinRicinus))
	require.NoError(t, err)

	tests := []struct {
		interval domain.Interval
		bucket   string
	}{
		{domain.IntervalDaily, "2024-03-15"},
		{domain.IntervalWeekly, "2024-W11"}, // 2024-03-15 is a Friday in ISO week 11
		{domain.IntervalMonthly, "2024-03"},
		{domain.IntervalYearly, "2024"},
	}

	for _, tc := range tests {
		t.Run(string(tc.interval), func(t *testing.T) {
			got, err := s.CountByInterval(ctx, tc.interval, store.Filter{})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.bucket, got[0].Bucket)
			assert.Equal(t, 1, got[0].Count)
		})
	}
}

func TestCountByIntervalOrderedAndFiltered(t *testing.T) {
	s := openTestStore(t)
	seedFixture(t, s)
	ctx := context.Background()

	t.Run("monthly buckets ascend", func(t *testing.T) {
		got, err := s.CountByInterval(ctx, domain.IntervalMonthly, store.Filter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []store.IntervalCount{
			{Bucket: "2024-03", Count: 2},
			{Bucket: "2024-04", Count: 2},
			{Bucket: "2025-01", Count: 1},
		}, got)
	})

	t.Run("species filter applies", func(t *testing.T) {
		got, err := s.CountByInterval(ctx, domain.IntervalYearly, store.Filter{Species: ptr(domain.SpeciesSheepTick)})
		require.NoError(t, err)
		assert.Equal(t, []store.IntervalCount{
			{Bucket: "2024", Count: 2},
			{Bucket: "2025", Count: 1},
		}, got)
	})

	t.Run("unknown interval is an input error", func(t *testing.T) {
		_, err := s.CountByInterval(ctx, domain.Interval("hourly"), store.Filter{})
		assert.ErrorIs(t, err, domain.ErrUnknownInterval)
	})
}

func TestCountByRegion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// London x3, Leeds x2.
	seedFixture(t, s)

	got, err := s.CountByRegion(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	counts := map[domain.Location]int{}
	total := 0
	for _, c := range got {
		counts[c.Location] = c.Count
		total += c.Count
	}
	assert.Equal(t, 3, counts[domain.LocationLondon])
	assert.Equal(t, 2, counts[domain.LocationLeeds])
	assert.Equal(t, 5, total)
}

func TestCountByRegionEmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, err := s.CountByRegion(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
