package domain

// Location is a city in the recording scheme's coverage area.
type Location string

// The 14 supported cities.
const (
	LocationLondon      Location = "London"
	LocationLeeds       Location = "Leeds"
	LocationManchester  Location = "Manchester"
	LocationBirmingham  Location = "Birmingham"
	LocationBristol     Location = "Bristol"
	LocationLiverpool   Location = "Liverpool"
	LocationNewcastle   Location = "Newcastle"
	LocationSheffield   Location = "Sheffield"
	LocationNottingham  Location = "Nottingham"
	LocationCardiff     Location = "Cardiff"
	LocationEdinburgh   Location = "Edinburgh"
	LocationGlasgow     Location = "Glasgow"
	LocationBelfast     Location = "Belfast"
	LocationSouthampton Location = "Southampton"
)

// Locations lists every valid Location, in scheme order.
func Locations() []Location {
	return []Location{
		LocationLondon, LocationLeeds, LocationManchester, LocationBirmingham,
		LocationBristol, LocationLiverpool, LocationNewcastle, LocationSheffield,
		LocationNottingham, LocationCardiff, LocationEdinburgh, LocationGlasgow,
		LocationBelfast, LocationSouthampton,
	}
}

// IsValid reports whether l is a member of the Location vocabulary.
func (l Location) IsValid() bool {
	switch l {
	case LocationLondon, LocationLeeds, LocationManchester, LocationBirmingham,
		LocationBristol, LocationLiverpool, LocationNewcastle, LocationSheffield,
		LocationNottingham, LocationCardiff, LocationEdinburgh, LocationGlasgow,
		LocationBelfast, LocationSouthampton:
		return true
	default:
		return false
	}
}

// Species is a common name for a tracked tick species.
type Species string

const (
	SpeciesSheepTick    Species = "Sheep tick"
	SpeciesHedgehogTick Species = "Hedgehog tick"
	SpeciesFoxTick      Species = "Fox tick"
	SpeciesMarshTick    Species = "Marsh tick"
	SpeciesTreeHoleTick Species = "Tree-hole tick"
)

// IsValid reports whether s is a member of the Species vocabulary.
func (s Species) IsValid() bool {
	switch s {
	case SpeciesSheepTick, SpeciesHedgehogTick, SpeciesFoxTick,
		SpeciesMarshTick, SpeciesTreeHoleTick:
		return true
	default:
		return false
	}
}

// LatinName is the binomial for a tracked tick species.
type LatinName string

const (
	LatinRicinus      LatinName = "Ixodes ricinus"
	LatinHexagonus    LatinName = "Ixodes hexagonus"
	LatinCanisuga     LatinName = "Ixodes canisuga"
	LatinApronophorus LatinName = "Ixodes apronophorus"
	LatinArboricola   LatinName = "Ixodes arboricola"
)

// IsValid reports whether n is a member of the LatinName vocabulary.
func (n LatinName) IsValid() bool {
	switch n {
	case LatinRicinus, LatinHexagonus, LatinCanisuga,
		LatinApronophorus, LatinArboricola:
		return true
	default:
		return false
	}
}

// LatinNameFor returns the binomial paired with the given species.
// The pairing is 1:1: every valid species has exactly one binomial.
func LatinNameFor(s Species) (LatinName, bool) {
	switch s {
	case SpeciesSheepTick:
		return LatinRicinus, true
	case SpeciesHedgehogTick:
		return LatinHexagonus, true
	case SpeciesFoxTick:
		return LatinCanisuga, true
	case SpeciesMarshTick:
		return LatinApronophorus, true
	case SpeciesTreeHoleTick:
		return LatinArboricola, true
	default:
		return "", false
	}
}

// Interval is an aggregation granularity for bucketed counts.
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

// IsValid reports whether i is a member of the Interval vocabulary.
func (i Interval) IsValid() bool {
	switch i {
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	default:
		return false
	}
}

// BucketLayout returns the SQLite strftime layout producing this interval's
// bucket label: "2024-03-15", "2024-W11" (ISO week), "2024-03", "2024".
// Panics on an invalid interval; callers validate with IsValid first.
func (i Interval) BucketLayout() string {
	switch i {
	case IntervalDaily:
		return "%Y-%m-%d"
	case IntervalWeekly:
		// %G/%V are ISO 8601 week-based year and week number.
		return "%G-W%V"
	case IntervalMonthly:
		return "%Y-%m"
	case IntervalYearly:
		return "%Y"
	default:
		panic("domain: invalid interval " + string(i))
	}
}
