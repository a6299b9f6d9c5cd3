package scorer

import "github.com/wandermatch/matchengine/pkg/types"

// HardFilter names a pair of mutually incompatible values for one matching
// field. When the user holds one value and the candidate the other (either
// direction, case-insensitive), the pair is disqualified outright.
type HardFilter struct {
	Field  string `mapstructure:"field"`
	ValueA string `mapstructure:"value-a"`
	ValueB string `mapstructure:"value-b"`
}

// Config tunes the compatibility scorer. Weights need not sum to 1; the
// scorer normalizes by the total weight of the attributes that actually
// contributed.
type Config struct {
	// QuestionWeights maps matching field names to non-negative weights,
	// applied to both the per-question semantic similarities and the
	// attribute similarities. Unlisted fields get weight 0.
	QuestionWeights map[string]float64 `mapstructure:"question-weights"`

	// Blend is the semantic share of the final score in [0,1]; the
	// attribute term gets 1-Blend. Ignored when no vectors are available.
	Blend float64 `mapstructure:"blend"`

	// HardFilters lists disqualifying value pairs.
	HardFilters []HardFilter `mapstructure:"hard-filters"`
}

// DefaultConfig returns the stock tuning: season, interests, personality
// and travel style dominate, softer signals get a low weight, and semantic
// and attribute similarity share the final score equally.
func DefaultConfig() Config {
	return Config{
		QuestionWeights: map[string]float64{
			types.FieldDestination:             0.2,
			types.FieldBudget:                  0.1,
			types.FieldTravelSeason:            0.3,
			types.FieldStayDuration:            0.1,
			types.FieldInterests:               0.3,
			types.FieldPersonalityType:         0.3,
			types.FieldCommunicationStyle:      0.1,
			types.FieldTravelStyle:             0.3,
			types.FieldAccommodationPreference: 0.1,
			types.FieldCulturalSymbol:          0.1,
			types.FieldBucketList:              0.1,
		},
		Blend: 0.5,
	}
}

// normalized clamps config values to usable ranges.
func (c Config) normalized() Config {
	if c.QuestionWeights == nil {
		c.QuestionWeights = DefaultConfig().QuestionWeights
	}
	if c.Blend < 0 {
		c.Blend = 0
	}
	if c.Blend > 1 {
		c.Blend = 1
	}
	return c
}

// weight returns the configured weight for a field, zero-floored.
func (c *Config) weight(field string) float64 {
	w := c.QuestionWeights[field]
	if w < 0 {
		return 0
	}
	return w
}
