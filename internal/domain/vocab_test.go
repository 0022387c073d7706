package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationIsValid(t *testing.T) {
	for _, loc := range Locations() {
		assert.True(t, loc.IsValid(), "expected %q to be valid", loc)
	}
	assert.Len(t, Locations(), 14)

	assert.False(t, Location("Paris").IsValid())
	assert.False(t, Location("").IsValid())
	assert.False(t, Location("london").IsValid(), "membership is case-sensitive")
}

func TestSpeciesIsValid(t *testing.T) {
	valid := []Species{
		SpeciesSheepTick, SpeciesHedgehogTick, SpeciesFoxTick,
		SpeciesMarshTick, SpeciesTreeHoleTick,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}

	assert.False(t, Species("Deer tick").IsValid())
	assert.False(t, Species("").IsValid())
}

func TestLatinNameIsValid(t *testing.T) {
	valid := []LatinName{
		LatinRicinus, LatinHexagonus, LatinCanisuga,
		LatinApronophorus, LatinArboricola,
	}
	for _, n := range valid {
		assert.True(t, n.IsValid(), "expected %q to be valid", n)
	}

	assert.False(t, LatinName("Ixodes scapularis").IsValid())
	assert.False(t, LatinName("").IsValid())
}

func TestLatinNameFor(t *testing.T) {
	pairs := map[Species]LatinName{
		SpeciesSheepTick:    LatinRicinus,
		SpeciesHedgehogTick: LatinHexagonus,
		SpeciesFoxTick:      LatinCanisuga,
		SpeciesMarshTick:    LatinApronophorus,
		SpeciesTreeHoleTick: LatinArboricola,
	}
	for species, want := range pairs {
		got, ok := LatinNameFor(species)
		require.True(t, ok, "no pairing for %q", species)
		assert.Equal(t, want, got)
	}

	_, ok := LatinNameFor(Species("Deer tick"))
	assert.False(t, ok)
}

func TestIntervalIsValid(t *testing.T) {
	for _, i := range []Interval{IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly} {
		assert.True(t, i.IsValid(), "expected %q to be valid", i)
	}
	assert.False(t, Interval("hourly").IsValid())
	assert.False(t, Interval("").IsValid())
}

func TestIntervalBucketLayout(t *testing.T) {
	assert.Equal(t, "%Y-%m-%d", IntervalDaily.BucketLayout())
	assert.Equal(t, "%G-W%V", IntervalWeekly.BucketLayout())
	assert.Equal(t, "%Y-%m", IntervalMonthly.BucketLayout())
	assert.Equal(t, "%Y", IntervalYearly.BucketLayout())

	assert.Panics(t, func() { Interval("hourly").BucketLayout() })
}
