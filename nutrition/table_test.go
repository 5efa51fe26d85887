package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable(t *testing.T) {
	table, err := LoadTable()
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 100)

	e, ok := table.Lookup("chicken breast")
	require.True(t, ok)
	assert.Equal(t, 31.0, e.Protein)
	assert.Equal(t, CategoryMeat, e.Category)

	// Lookups normalize case and whitespace.
	_, ok = table.Lookup("  Chicken Breast ")
	assert.True(t, ok)

	_, ok = table.Lookup("unobtainium")
	assert.False(t, ok)
}

func TestTable_NamesSortedLongestFirst(t *testing.T) {
	table, err := LoadTable()
	require.NoError(t, err)

	names := table.Names()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.GreaterOrEqual(t, len(names[i-1]), len(names[i]),
			"%q before %q", names[i-1], names[i])
	}
}

func TestParseTable_MalformedEntries(t *testing.T) {
	table, err := parseTable([]byte(`[
		{"name": "chicken", "protein": 31, "calories": 165, "category": "meat"},
		{"name": "", "protein": 1, "calories": 1, "category": "meat"},
		{"name": "ghost rice", "protein": 2.7, "calories": 0, "category": "carb"},
		{"name": "antiprotein", "protein": -5, "calories": 100, "category": "carb"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len(), "empty name dropped, bad values repaired")

	e, ok := table.Lookup("ghost rice")
	require.True(t, ok)
	assert.Equal(t, 130.0, e.Calories, "missing calories filled from the keyword estimate")

	e, ok = table.Lookup("antiprotein")
	require.True(t, ok)
	assert.Zero(t, e.Protein)
}

func TestParseTable_InvalidJSON(t *testing.T) {
	_, err := parseTable([]byte(`{"not": "a list"}`))
	assert.Error(t, err)
}

func TestTable_ByCategory(t *testing.T) {
	table, err := LoadTable()
	require.NoError(t, err)

	grouped := table.ByCategory()
	assert.Contains(t, grouped[CategoryMeat], "chicken breast")
	assert.Contains(t, grouped[CategoryFish], "salmon")

	total := 0
	for _, names := range grouped {
		total += len(names)
	}
	assert.Equal(t, table.Len(), total)
}
