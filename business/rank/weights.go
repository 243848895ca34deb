package rank

// Weights is the versioned scoring configuration. The weighted components
// must sum to 1.0; flat bonuses apply after the weighted sum.
type Weights struct {
	Version int

	ArtistMatch       float64
	LocationProximity float64
	DateProximity     float64
	PriceValue        float64
	Popularity        float64
	MetadataQuality   float64
	SeasonalFactor    float64
	UserBehavior      float64

	// flat additive bonuses, applied after the weighted sum
	BonusEventType     float64
	BonusEventSubtype  float64
	BonusPerGenre      float64
	BonusGenreCap      float64
	BonusVerified      float64
	BonusCollaboration float64
}

func DefaultWeights() Weights {
	return Weights{
		Version: 1,

		ArtistMatch:       0.25,
		LocationProximity: 0.20,
		DateProximity:     0.15,
		PriceValue:        0.15,
		Popularity:        0.10,
		MetadataQuality:   0.05,
		SeasonalFactor:    0.05,
		UserBehavior:      0.05,

		BonusEventType:     20,
		BonusEventSubtype:  30,
		BonusPerGenre:      15,
		BonusGenreCap:      45,
		BonusVerified:      10,
		BonusCollaboration: 15,
	}
}

// eventTypeMultipliers scale the price-value contribution per event type.
var eventTypeMultipliers = map[string]float64{
	"festival": 1.2,
	"sports":   1.3,
	"comedy":   0.8,
	"theater":  0.9,
	"concert":  1.0,
}

func eventTypeMultiplier(eventType string) float64 {
	if m, ok := eventTypeMultipliers[eventType]; ok {
		return m
	}
	return 1.0
}

// seasonalMultipliers is the fixed month table: summer and December peak,
// February troughs.
var seasonalMultipliers = [13]float64{
	0,    // unused, months are 1-based
	0.9,  // January
	0.7,  // February
	0.9,  // March
	1.0,  // April
	1.1,  // May
	1.2,  // June
	1.3,  // July
	1.2,  // August
	1.0,  // September
	1.0,  // October
	0.9,  // November
	1.4,  // December
}

const seasonalPeak = 1.4
