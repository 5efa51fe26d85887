package nutrition

import (
	"math"
	"strings"
)

// lightKeywords mark calorie-dense foods eaten in small amounts.
var lightKeywords = []string{
	"nut", "almond", "walnut", "peanut", "cashew", "pistachio",
	"seed", "butter", "oil", "bacon",
}

// heavyKeywords mark watery, voluminous foods.
var heavyKeywords = []string{"soup", "stew", "salad"}

// PortionEstimator assigns a gram weight to each retained food so that the
// per-meal total matches a target that scales with item count.
type PortionEstimator struct {
	table *Table
	cfg   *PortionConfig
}

func NewPortionEstimator(table *Table, cfg *Config) *PortionEstimator {
	return &PortionEstimator{table: table, cfg: &cfg.Portions}
}

// TargetTotal is the assumed plate weight for n items. Single-item photos are
// usually a lone ingredient, not a full meal, so the plate shrinks with n.
func (e *PortionEstimator) TargetTotal(n int) float64 {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return e.cfg.SingleItemGrams
	case n == 2:
		return e.cfg.TwoItemGrams
	case n <= 4:
		return e.cfg.SmallPlateGrams
	default:
		return e.cfg.LargePlateGrams
	}
}

// Portions distributes TargetTotal(len(names)) grams across the foods by
// density, clamping each item to a sane range.
func (e *PortionEstimator) Portions(names []string) []PortionedFood {
	if len(names) == 0 {
		return nil
	}
	target := e.TargetTotal(len(names))

	out := make([]PortionedFood, len(names))
	base := make([]float64, len(names))
	for i, name := range names {
		out[i].Name = name
		base[i] = e.baseWeight(name)
	}

	// Scale base weights to the target, pinning any item that leaves the
	// clamp range and re-scaling the rest until everything fits.
	fixed := make([]bool, len(names))
	remaining := target
	for {
		var freeBase float64
		for i := range names {
			if !fixed[i] {
				freeBase += base[i]
			}
		}
		if freeBase <= 0 {
			break
		}
		factor := remaining / freeBase
		clamped := false
		for i := range names {
			if fixed[i] {
				continue
			}
			g := base[i] * factor
			if g < e.cfg.MinItemGrams {
				out[i].Grams = e.cfg.MinItemGrams
			} else if g > e.cfg.MaxItemGrams {
				out[i].Grams = e.cfg.MaxItemGrams
			} else {
				out[i].Grams = g
				continue
			}
			fixed[i] = true
			remaining -= out[i].Grams
			clamped = true
		}
		if !clamped {
			break
		}
	}

	for i := range out {
		out[i].Grams = round1(out[i].Grams)
	}
	// Absorb rounding drift into the largest unpinned portion so the total
	// invariant holds.
	var sum float64
	for _, p := range out {
		sum += p.Grams
	}
	if diff := round1(target - sum); diff != 0 {
		idx := 0
		for i := range out {
			if !fixed[i] && out[i].Grams > out[idx].Grams {
				idx = i
			}
		}
		adjusted := round1(out[idx].Grams + diff)
		if adjusted >= e.cfg.MinItemGrams && adjusted <= e.cfg.MaxItemGrams {
			out[idx].Grams = adjusted
		}
	}
	return out
}

// baseWeight is the pre-normalization density weight for one food.
func (e *PortionEstimator) baseWeight(name string) float64 {
	for _, kw := range lightKeywords {
		if strings.Contains(name, kw) {
			return e.cfg.LightBaseGrams
		}
	}
	for _, kw := range heavyKeywords {
		if strings.Contains(name, kw) {
			return e.cfg.HeavyBaseGrams
		}
	}
	if cat, ok := e.table.CategoryOf(name); ok {
		switch cat {
		case CategoryNut:
			return e.cfg.LightBaseGrams
		case CategoryVegetable:
			return e.cfg.HeavyBaseGrams
		}
	}
	return e.cfg.MediumBaseGrams
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
