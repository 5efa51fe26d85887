package nutrition

import (
	"sort"
	"strings"
)

// synonymClusters group names that describe the same food at different
// specificity; one photo should never be charged for both "beef" and "steak".
var synonymClusters = [][]string{
	{"beef", "steak", "ground beef", "ribeye", "sirloin", "roast beef"},
	{"chicken", "chicken breast", "chicken thigh", "grilled chicken", "fried chicken"},
	{"pork", "pork chop"},
	{"turkey", "turkey breast"},
	{"salmon", "smoked salmon"},
	{"egg", "eggs", "scrambled eggs", "boiled eggs", "omelette"},
	{"cheese", "cottage cheese", "mac and cheese", "cheddar", "mozzarella", "parmesan", "feta"},
	{"butter", "peanut butter"},
	{"soup", "chicken soup"},
	{"yogurt", "greek yogurt"},
	{"rice", "white rice", "brown rice", "fried rice"},
	{"bread", "white bread", "whole wheat bread", "toast", "sourdough", "bagel"},
	{"pasta", "spaghetti", "penne", "noodles"},
	{"beans", "black beans", "kidney beans", "baked beans"},
	{"potato", "sweet potato"},
	{"peas", "green peas"},
	{"salad", "caesar salad"},
}

// dishImplications lists ingredients already counted inside a dish. When the
// dish is present, the bare ingredient is folded into it.
var dishImplications = map[string][]string{
	"hamburger":    {"beef", "bread"},
	"pizza":        {"cheese", "bread", "tomato"},
	"sushi":        {"rice", "salmon"},
	"caesar salad": {"lettuce", "chicken"},
	"sandwich":     {"bread"},
	"burrito":      {"rice", "beans"},
	"taco":         {"beef", "lettuce"},
	"lasagna":      {"pasta", "cheese", "ground beef"},
	"mac and cheese": {"pasta", "cheese"},
	"fried rice":   {"rice", "egg"},
	"beef stew":    {"beef", "potato"},
	"chicken soup": {"chicken"},
}

// Filter turns the raw candidate set for one image into the final food list.
type Filter struct {
	table *Table
	cfg   *FilteringConfig
}

func NewFilter(table *Table, cfg *Config) *Filter {
	return &Filter{table: table, cfg: &cfg.Filtering}
}

// Apply deduplicates, resolves synonym clusters, suppresses minority-category
// outliers, folds dish ingredients, and caps the result. A non-empty input
// never produces an empty output: the best single candidate survives.
func (f *Filter) Apply(candidates []Candidate) []string {
	if len(candidates) == 0 {
		return nil
	}

	// Dedupe keeping first-seen order and the max confidence per name.
	order := make([]string, 0, len(candidates))
	conf := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if _, seen := conf[name]; !seen {
			order = append(order, name)
			conf[name] = c.Confidence
		} else if c.Confidence > conf[name] {
			conf[name] = c.Confidence
		}
	}

	kept := f.resolveClusters(order, conf)
	kept = f.applyConsensus(kept, conf)
	kept = foldImplications(kept)
	kept = f.cap(kept, conf)

	if len(kept) == 0 {
		return []string{bestCandidate(order, conf)}
	}
	return kept
}

// score ranks a candidate: confidence plus a small protein nudge, since the
// protein-rich item is usually the subject of the photo.
func (f *Filter) score(name string, conf map[string]float64) float64 {
	return conf[name] + f.table.Protein(name)/100
}

// resolveClusters keeps one representative per synonym cluster: the most
// specific term present, ties broken by score.
func (f *Filter) resolveClusters(names []string, conf map[string]float64) []string {
	clusterOf := make(map[string]int)
	for i, cluster := range synonymClusters {
		for _, n := range cluster {
			clusterOf[n] = i
		}
	}

	winner := make(map[int]string)
	for _, n := range names {
		ci, ok := clusterOf[n]
		if !ok {
			continue
		}
		cur, have := winner[ci]
		if !have || moreSpecific(n, cur) ||
			(!moreSpecific(cur, n) && f.score(n, conf) > f.score(cur, conf)) {
			winner[ci] = n
		}
	}

	out := names[:0:0]
	for _, n := range names {
		ci, ok := clusterOf[n]
		if ok && winner[ci] != n {
			continue
		}
		out = append(out, n)
	}
	return out
}

// moreSpecific prefers multi-word names, then longer ones.
func moreSpecific(a, b string) bool {
	aw, bw := len(strings.Fields(a)), len(strings.Fields(b))
	if aw != bw {
		return aw > bw
	}
	return len(a) > len(b)
}

// applyConsensus finds the dominant broad category and drops low-confidence
// candidates from minority categories, like a stray "pork" label on a salad
// photo.
func (f *Filter) applyConsensus(names []string, conf map[string]float64) []string {
	counts := make(map[Category]int)
	for _, n := range names {
		if cat, ok := f.table.CategoryOf(n); ok {
			counts[cat]++
		}
	}
	var dominant Category
	best := 0
	for cat, c := range counts {
		if c > best || (c == best && cat < dominant) {
			dominant, best = cat, c
		}
	}
	if best < 2 {
		return names // no meaningful consensus on one or two mixed items
	}

	out := names[:0:0]
	for _, n := range names {
		cat, ok := f.table.CategoryOf(n)
		if !ok || cat == dominant || conf[n] >= f.cfg.MinorityConfidence {
			out = append(out, n)
		}
	}
	return out
}

// foldImplications removes an ingredient when a dish that already contains it
// is on the plate.
func foldImplications(names []string) []string {
	implied := make(map[string]bool)
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, n := range names {
		if !present[n] {
			continue
		}
		for _, ing := range dishImplications[n] {
			implied[ing] = true
		}
	}

	out := names[:0:0]
	for _, n := range names {
		if !implied[n] {
			out = append(out, n)
		}
	}
	return out
}

// cap keeps the MaxItems best-scoring candidates, then restores first-seen
// order among the survivors.
func (f *Filter) cap(names []string, conf map[string]float64) []string {
	if len(names) <= f.cfg.MaxItems {
		return names
	}
	ranked := append(names[:0:0], names...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return f.score(ranked[i], conf) > f.score(ranked[j], conf)
	})
	keep := make(map[string]bool, f.cfg.MaxItems)
	for _, n := range ranked[:f.cfg.MaxItems] {
		keep[n] = true
	}

	out := names[:0:0]
	for _, n := range names {
		if keep[n] {
			out = append(out, n)
		}
	}
	return out
}

func bestCandidate(names []string, conf map[string]float64) string {
	best := names[0]
	for _, n := range names[1:] {
		if conf[n] > conf[best] {
			best = n
		}
	}
	return best
}
