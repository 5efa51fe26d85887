package nutrition

import "log"

// Aggregator folds portions and the nutrition table into the meal totals.
type Aggregator struct {
	table *Table
}

func NewAggregator(table *Table) *Aggregator {
	return &Aggregator{table: table}
}

// Totals returns (protein grams, calories) for the portioned meal, each
// rounded to one decimal. A name the table does not know gets a keyword
// estimate instead of failing: a best-effort number always beats a lost
// upload in a best-effort tracker.
func (a *Aggregator) Totals(portions []PortionedFood) (protein, calories float64) {
	for _, p := range portions {
		per100Protein, per100Calories := a.perHundred(p.Name)
		protein += per100Protein * p.Grams / 100
		calories += per100Calories * p.Grams / 100
	}
	return round1(protein), round1(calories)
}

func (a *Aggregator) perHundred(name string) (protein, calories float64) {
	if e, ok := a.table.Lookup(name); ok {
		return e.Protein, e.Calories
	}
	log.Printf("nutrition: %q not in table, using keyword estimate", name)
	return keywordEstimate(name)
}
