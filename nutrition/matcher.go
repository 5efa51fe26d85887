package nutrition

import (
	"strings"
)

// MatchRule maps one vision label to zero or more canonical foods. Rules run
// in a fixed priority order with early exit: the first rule that produces
// candidates wins.
type MatchRule interface {
	Name() string
	Match(label string, confidence float64, accepted []string) []Candidate
}

// Matcher resolves raw label text against the nutrition table.
type Matcher struct {
	table *Table
	cfg   *MatchingConfig
	rules []MatchRule
}

func NewMatcher(table *Table, cfg *Config) *Matcher {
	m := &Matcher{table: table, cfg: &cfg.Matching}
	m.rules = []MatchRule{
		&exactRule{table: table},
		&compositeDishRule{table: table},
		&wordBoundaryRule{table: table},
		&mealTypeRule{table: table, cfg: m.cfg},
		&categoryFallbackRule{table: table, cfg: m.cfg},
	}
	return m
}

// Match returns the canonical foods for one label, or nil. The accepted list
// is what the caller has already taken from other labels of the same image;
// the category fallback uses it to avoid piling generic guesses on top of
// specific matches.
func (m *Matcher) Match(label string, confidence float64, accepted []string) []Candidate {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || isNonFood(label) {
		return nil
	}
	for _, rule := range m.rules {
		if cands := rule.Match(label, confidence, accepted); len(cands) > 0 {
			return cands
		}
	}
	return nil
}

// MinConfidence is the sliding acceptance threshold for one label: a
// corroborating preparation word lowers it, a crowded plate raises it.
func (m *Matcher) MinConfidence(label string, acceptedCount int) float64 {
	min := m.cfg.BaseConfidence
	if hasEvidenceKeyword(label) {
		min -= m.cfg.KeywordEvidenceBonus
	}
	if acceptedCount >= m.cfg.CrowdedAfter {
		min += m.cfg.CrowdedPenalty
	}
	if min < 0 {
		min = 0
	}
	if min > 1 {
		min = 1
	}
	return min
}

// ---------- rule 1: exact match ----------

type exactRule struct{ table *Table }

func (r *exactRule) Name() string { return "exact" }

func (r *exactRule) Match(label string, confidence float64, _ []string) []Candidate {
	if _, ok := r.table.Lookup(label); ok {
		return []Candidate{{Name: label, Confidence: confidence, Source: SourceLabel}}
	}
	return nil
}

// ---------- rule 2: composite dish decomposition ----------

// compositeDishes maps known compound phrases to their components. Checked
// before substring matching so a known dish is not fragmented into whatever
// table names happen to appear inside it.
var compositeDishes = []struct {
	phrase     string
	components []string
}{
	{"spaghetti bolognese", []string{"spaghetti", "ground beef", "tomato"}},
	{"spaghetti carbonara", []string{"spaghetti", "bacon", "egg", "parmesan"}},
	{"fish and chips", []string{"cod", "french fries"}},
	{"chicken curry", []string{"chicken", "rice"}},
	{"chicken and waffles", []string{"fried chicken", "waffles"}},
	{"eggs benedict", []string{"eggs", "ham", "toast"}},
	{"steak and eggs", []string{"steak", "eggs"}},
	{"burger and fries", []string{"hamburger", "french fries"}},
	{"surf and turf", []string{"steak", "lobster"}},
}

type compositeDishRule struct{ table *Table }

func (r *compositeDishRule) Name() string { return "composite_dish" }

func (r *compositeDishRule) Match(label string, confidence float64, _ []string) []Candidate {
	for _, dish := range compositeDishes {
		if !containsPhrase(label, dish.phrase) {
			continue
		}
		cands := make([]Candidate, 0, len(dish.components))
		for _, name := range dish.components {
			if _, ok := r.table.Lookup(name); ok {
				cands = append(cands, Candidate{Name: name, Confidence: confidence, Source: SourceLabel})
			}
		}
		return cands
	}
	return nil
}

// ---------- rule 3: word-boundary substring match ----------

type wordBoundaryRule struct{ table *Table }

func (r *wordBoundaryRule) Name() string { return "word_boundary" }

func (r *wordBoundaryRule) Match(label string, confidence float64, _ []string) []Candidate {
	// Names() is sorted longest-first, so specific names surface before the
	// generic terms they contain.
	var matched []string
	for _, name := range r.table.Names() {
		if len(name) < 3 {
			continue
		}
		if containsPhrase(label, name) {
			matched = append(matched, name)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	// Drop a match that is a strict prefix of a longer match ("rice" when
	// "brown rice" already matched the same label).
	var cands []Candidate
	for _, name := range matched {
		shadowed := false
		for _, longer := range matched {
			if len(longer) > len(name) && strings.HasPrefix(longer, name) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			cands = append(cands, Candidate{Name: name, Confidence: confidence, Source: SourceLabel})
		}
	}
	return cands
}

// ---------- rule 4: meal/category decomposition ----------

// mealTypes maps meal-type keywords to the foods such a plate usually holds.
var mealTypes = []struct {
	keyword    string
	components []string
}{
	{"english breakfast", []string{"bacon", "eggs", "sausage", "toast", "baked beans"}},
	{"full breakfast", []string{"bacon", "eggs", "sausage", "toast", "baked beans"}},
	{"breakfast", []string{"eggs", "toast", "bacon"}},
	{"brunch", []string{"eggs", "toast", "salad"}},
	{"charcuterie", []string{"salami", "ham", "cheese"}},
	{"platter", []string{"chicken", "beef", "bread"}},
}

type mealTypeRule struct {
	table *Table
	cfg   *MatchingConfig
}

func (r *mealTypeRule) Name() string { return "meal_type" }

func (r *mealTypeRule) Match(label string, confidence float64, _ []string) []Candidate {
	for _, mt := range mealTypes {
		if !containsPhrase(label, mt.keyword) {
			continue
		}
		// Bigger implied plates demand more confidence.
		threshold := r.cfg.MealTypeBase + r.cfg.MealTypePerComponent*float64(len(mt.components))
		if confidence < threshold {
			return nil
		}
		// Truncate the component list in proportion to confidence.
		n := int(confidence*float64(len(mt.components)) + 0.5)
		if n < 1 {
			n = 1
		}
		if n > len(mt.components) {
			n = len(mt.components)
		}
		cands := make([]Candidate, 0, n)
		for _, name := range mt.components[:n] {
			if _, ok := r.table.Lookup(name); ok {
				cands = append(cands, Candidate{Name: name, Confidence: confidence, Source: SourceLabel})
			}
		}
		return cands
	}
	return nil
}

// ---------- rule 5: category fallback ----------

// categoryFallbacks maps a broad category word to one representative food.
// Fires only at very high confidence, only when nothing specific matched for
// the whole image yet, and only with a disambiguating keyword alongside.
var categoryFallbacks = []struct {
	word           string
	representative string
	disambiguators []string
}{
	{"meat", "beef", []string{"grilled", "roast", "roasted", "barbecue", "bbq", "smoked", "red"}},
	{"poultry", "chicken", []string{"grilled", "fried", "roast", "roasted"}},
	{"fish", "cod", []string{"grilled", "fried", "baked", "fillet"}},
	{"seafood", "salmon", []string{"grilled", "fried", "fresh", "raw", "fillet"}},
	{"vegetable", "salad", []string{"fresh", "green", "mixed", "steamed"}},
}

type categoryFallbackRule struct {
	table *Table
	cfg   *MatchingConfig
}

func (r *categoryFallbackRule) Name() string { return "category_fallback" }

func (r *categoryFallbackRule) Match(label string, confidence float64, accepted []string) []Candidate {
	if len(accepted) > 0 || confidence < r.cfg.CategoryFallbackConfidence {
		return nil
	}
	for _, fb := range categoryFallbacks {
		if !containsPhrase(label, fb.word) {
			continue
		}
		for _, d := range fb.disambiguators {
			if containsPhrase(label, d) {
				if _, ok := r.table.Lookup(fb.representative); ok {
					return []Candidate{{Name: fb.representative, Confidence: confidence, Source: SourceLabel}}
				}
			}
		}
	}
	return nil
}

// ---------- non-food deny list ----------

// nonFoodWords are container, utensil and scene words the vision service
// loves to report. Any of them as a whole word rejects the label outright.
var nonFoodWords = map[string]struct{}{
	"plate": {}, "plates": {}, "fork": {}, "knife": {}, "spoon": {},
	"cutlery": {}, "tableware": {}, "dishware": {}, "bowl": {}, "cup": {},
	"glass": {}, "mug": {}, "napkin": {}, "tablecloth": {}, "tray": {},
	"kitchen": {}, "restaurant": {}, "table": {}, "counter": {},
	"person": {}, "hand": {}, "finger": {}, "menu": {}, "logo": {},
	"furniture": {}, "chair": {}, "room": {},
}

func isNonFood(label string) bool {
	for _, word := range strings.Fields(label) {
		if _, bad := nonFoodWords[word]; bad {
			return true
		}
	}
	return false
}

// evidenceKeywords are preparation words that corroborate a food label.
var evidenceKeywords = []string{
	"grilled", "fried", "roasted", "baked", "steamed", "smoked",
	"cooked", "homemade", "fresh", "sliced",
}

func hasEvidenceKeyword(label string) bool {
	for _, kw := range evidenceKeywords {
		if containsPhrase(label, kw) {
			return true
		}
	}
	return false
}

// containsPhrase reports whether phrase occurs in text on word boundaries:
// the whole text, a prefix, a suffix, or surrounded by spaces. A bare
// substring inside another word does not count.
func containsPhrase(text, phrase string) bool {
	if text == phrase {
		return true
	}
	if strings.HasPrefix(text, phrase+" ") || strings.HasSuffix(text, " "+phrase) {
		return true
	}
	return strings.Contains(text, " "+phrase+" ")
}
