package nutrition

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
)

//go:embed table.json
var tableJSON []byte

// Category is the broad food group used for consensus filtering.
type Category string

const (
	CategoryMeat      Category = "meat"
	CategoryFish      Category = "fish"
	CategoryDairy     Category = "dairy"
	CategoryCarb      Category = "carb"
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	CategoryLegume    Category = "legume"
	CategoryNut       Category = "nut"
)

// Entry is one canonical food with its per-100g profile. Protein and calories
// live in the same record so the two can never drift apart.
type Entry struct {
	Name     string   `json:"name"`
	Protein  float64  `json:"protein"`  // g per 100g
	Calories float64  `json:"calories"` // kcal per 100g
	Category Category `json:"category"`
}

// Table is the process-wide, read-only nutrition lookup. Load it once at
// startup and inject it; it is never mutated afterwards.
type Table struct {
	entries map[string]Entry
	names   []string // sorted longest-first for substring matching
}

// LoadTable parses the embedded nutrition table.
func LoadTable() (*Table, error) {
	return parseTable(tableJSON)
}

func parseTable(data []byte) (*Table, error) {
	var raw []Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("nutrition table: %w", err)
	}
	t := &Table{entries: make(map[string]Entry, len(raw))}
	for _, e := range raw {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name == "" {
			continue
		}
		if e.Calories <= 0 {
			// Bad row; keep the name usable with estimated calories rather
			// than dropping the food entirely.
			log.Printf("nutrition table: %q has no calorie value, using keyword estimate", name)
			_, kcal := keywordEstimate(name)
			e.Calories = kcal
		}
		if e.Protein < 0 {
			log.Printf("nutrition table: %q has negative protein, treating as zero", name)
			e.Protein = 0
		}
		e.Name = name
		t.entries[name] = e
	}
	t.names = make([]string, 0, len(t.entries))
	for name := range t.entries {
		t.names = append(t.names, name)
	}
	sortByLengthDesc(t.names)
	return t, nil
}

// Lookup returns the entry for an exact canonical name.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Protein returns grams of protein per 100g, or 0 when unknown.
func (t *Table) Protein(name string) float64 {
	e, ok := t.Lookup(name)
	if !ok {
		return 0
	}
	return e.Protein
}

// CategoryOf returns the broad group for a canonical name.
func (t *Table) CategoryOf(name string) (Category, bool) {
	e, ok := t.Lookup(name)
	return e.Category, ok
}

// Names returns all canonical names, longest first. The slice is shared;
// callers must not modify it.
func (t *Table) Names() []string {
	return t.names
}

// Len reports how many foods the table knows.
func (t *Table) Len() int { return len(t.entries) }

// ByCategory groups canonical names for the suggestions endpoint.
func (t *Table) ByCategory() map[Category][]string {
	out := make(map[Category][]string)
	for _, name := range t.names {
		e := t.entries[name]
		out[e.Category] = append(out[e.Category], name)
	}
	return out
}

func sortByLengthDesc(names []string) {
	// Longer names first so specific matches win; alphabetical within a
	// length keeps iteration deterministic.
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
}

// keywordEstimate produces a best-effort (protein, calories) per 100g for a
// name the table does not know. A rough number beats a failed upload here.
func keywordEstimate(name string) (protein, calories float64) {
	type guess struct {
		keyword  string
		protein  float64
		calories float64
	}
	guesses := []guess{
		{"chicken", 30, 165},
		{"turkey", 29, 189},
		{"beef", 26, 250},
		{"steak", 26, 271},
		{"pork", 25, 242},
		{"bacon", 37, 541},
		{"salmon", 20, 208},
		{"tuna", 30, 132},
		{"fish", 20, 150},
		{"shrimp", 24, 99},
		{"egg", 13, 155},
		{"cheese", 25, 350},
		{"yogurt", 10, 59},
		{"milk", 3.4, 61},
		{"bean", 8, 127},
		{"lentil", 9, 116},
		{"tofu", 8, 76},
		{"nut", 20, 580},
		{"seed", 19, 550},
		{"rice", 2.7, 130},
		{"pasta", 5, 157},
		{"bread", 8, 265},
		{"salad", 2.5, 70},
		{"vegetable", 2, 40},
		{"fruit", 0.8, 55},
	}
	for _, g := range guesses {
		if strings.Contains(name, g.keyword) {
			return g.protein, g.calories
		}
	}
	return 5, 150
}
