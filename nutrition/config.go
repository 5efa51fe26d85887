package nutrition

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable threshold of the pipeline. The historical
// versions of this app never agreed on these numbers, so they live in
// configuration: defaults below, overridable from a TOML file.
type Config struct {
	Matching  MatchingConfig  `toml:"matching"`
	Filtering FilteringConfig `toml:"filtering"`
	Portions  PortionConfig   `toml:"portions"`
}

type MatchingConfig struct {
	// BaseConfidence is the minimum label confidence with no other evidence.
	BaseConfidence float64 `toml:"base_confidence"`
	// KeywordEvidenceBonus lowers the bar when the label carries a
	// corroborating preparation word ("grilled", "roasted", ...).
	KeywordEvidenceBonus float64 `toml:"keyword_evidence_bonus"`
	// CrowdedPenalty raises the bar once CrowdedAfter foods are accepted,
	// so noisy images cannot accumulate false positives without limit.
	CrowdedPenalty float64 `toml:"crowded_penalty"`
	CrowdedAfter   int     `toml:"crowded_after"`
	// Meal-type decomposition: required confidence is
	// MealTypeBase + MealTypePerComponent * len(components).
	MealTypeBase         float64 `toml:"meal_type_base"`
	MealTypePerComponent float64 `toml:"meal_type_per_component"`
	// CategoryFallbackConfidence gates the last-resort category rule.
	CategoryFallbackConfidence float64 `toml:"category_fallback_confidence"`
}

type FilteringConfig struct {
	// MaxItems caps how many foods one photo can yield.
	MaxItems int `toml:"max_items"`
	// MinorityConfidence is the higher bar for candidates outside the
	// dominant food category.
	MinorityConfidence float64 `toml:"minority_confidence"`
}

type PortionConfig struct {
	// Target plate weight as a step function of item count.
	SingleItemGrams float64 `toml:"single_item_grams"`
	TwoItemGrams    float64 `toml:"two_item_grams"`
	SmallPlateGrams float64 `toml:"small_plate_grams"` // 3-4 items
	LargePlateGrams float64 `toml:"large_plate_grams"` // 5+ items
	// Density base weights before normalization.
	LightBaseGrams  float64 `toml:"light_base_grams"`  // nuts, seeds, butter
	MediumBaseGrams float64 `toml:"medium_base_grams"` // meats, grains, eggs
	HeavyBaseGrams  float64 `toml:"heavy_base_grams"`  // vegetables, soups, stews
	// Per-item clamp after scaling.
	MinItemGrams float64 `toml:"min_item_grams"`
	MaxItemGrams float64 `toml:"max_item_grams"`
}

// DefaultConfig returns the pinned production values.
func DefaultConfig() *Config {
	return &Config{
		Matching: MatchingConfig{
			BaseConfidence:             0.60,
			KeywordEvidenceBonus:       0.10,
			CrowdedPenalty:             0.15,
			CrowdedAfter:               3,
			MealTypeBase:               0.55,
			MealTypePerComponent:       0.04,
			CategoryFallbackConfidence: 0.90,
		},
		Filtering: FilteringConfig{
			MaxItems:           4,
			MinorityConfidence: 0.80,
		},
		Portions: PortionConfig{
			SingleItemGrams: 120,
			TwoItemGrams:    200,
			SmallPlateGrams: 300,
			LargePlateGrams: 400,
			LightBaseGrams:  30,
			MediumBaseGrams: 100,
			HeavyBaseGrams:  150,
			MinItemGrams:    10,
			MaxItemGrams:    250,
		},
	}
}

// LoadConfig overlays a TOML tuning file on top of the defaults. A missing
// file is not an error; the defaults are the shipped configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read tuning config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse tuning config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("tuning config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Filtering.MaxItems < 1 {
		return fmt.Errorf("filtering.max_items must be >= 1, got %d", c.Filtering.MaxItems)
	}
	if c.Portions.MinItemGrams <= 0 || c.Portions.MaxItemGrams <= c.Portions.MinItemGrams {
		return fmt.Errorf("portion clamp [%g, %g] is not a valid range",
			c.Portions.MinItemGrams, c.Portions.MaxItemGrams)
	}
	for _, v := range []float64{c.Matching.BaseConfidence, c.Matching.CategoryFallbackConfidence, c.Filtering.MinorityConfidence} {
		if v < 0 || v > 1 {
			return fmt.Errorf("confidence threshold %g outside [0,1]", v)
		}
	}
	return nil
}
