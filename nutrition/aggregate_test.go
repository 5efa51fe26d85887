package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_TotalsFromTable(t *testing.T) {
	table, _ := testPipelineParts(t)
	a := NewAggregator(table)

	protein, calories := a.Totals([]PortionedFood{{Name: "chicken breast", Grams: 120}})
	assert.InDelta(t, 37.2, protein, 0.001)
	assert.InDelta(t, 198.0, calories, 0.001)
}

func TestAggregator_SumsAcrossPortions(t *testing.T) {
	table, _ := testPipelineParts(t)
	a := NewAggregator(table)

	protein, calories := a.Totals([]PortionedFood{
		{Name: "rice", Grams: 150},
		{Name: "salmon", Grams: 100},
	})
	// 2.7*1.5 + 20*1.0 and 130*1.5 + 208*1.0
	assert.InDelta(t, 24.1, protein, 0.001)
	assert.InDelta(t, 403.0, calories, 0.001)
}

func TestAggregator_UnknownFoodFallsBackToKeywordEstimate(t *testing.T) {
	table, _ := testPipelineParts(t)
	a := NewAggregator(table)

	require.NotContains(t, table.Names(), "leftover chicken thing")
	protein, calories := a.Totals([]PortionedFood{{Name: "leftover chicken thing", Grams: 100}})
	assert.InDelta(t, 30.0, protein, 0.001)
	assert.InDelta(t, 165.0, calories, 0.001)

	// A name with no keyword at all still yields a small nonzero estimate.
	protein, calories = a.Totals([]PortionedFood{{Name: "mystery casserole", Grams: 100}})
	assert.InDelta(t, 5.0, protein, 0.001)
	assert.InDelta(t, 150.0, calories, 0.001)
}

func TestAggregator_EmptyPortions(t *testing.T) {
	table, _ := testPipelineParts(t)
	a := NewAggregator(table)

	protein, calories := a.Totals(nil)
	assert.Zero(t, protein)
	assert.Zero(t, calories)
}
