package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cand(name string, conf float64) Candidate {
	return Candidate{Name: name, Confidence: conf, Source: SourceLabel}
}

func TestFilter_SynonymClusterKeepsOne(t *testing.T) {
	table, cfg := testPipelineParts(t)
	f := NewFilter(table, cfg)

	got := f.Apply([]Candidate{cand("beef", 0.70), cand("steak", 0.80)})
	assert.Equal(t, []string{"steak"}, got)
}

func TestFilter_SpecificityBeatsConfidence(t *testing.T) {
	table, cfg := testPipelineParts(t)
	f := NewFilter(table, cfg)

	// The multi-word name wins its cluster even at lower confidence.
	got := f.Apply([]Candidate{cand("chicken", 0.95), cand("chicken breast", 0.70)})
	assert.Equal(t, []string{"chicken breast"}, got)
}

func TestFilter_ConsensusDropsMinorityOutlier(t *testing.T) {
	table, cfg := testPipelineParts(t)
	f := NewFilter(table, cfg)

	cands := []Candidate{
		cand("lettuce", 0.90),
		cand("tomato", 0.88),
		cand("cucumber", 0.85),
		cand("pork", 0.60),
	}
	got := f.Apply(cands)
	assert.Equal(t, []string{"lettuce", "tomato", "cucumber"}, got)

	// The same outlier survives at high confidence.
	cands[3] = cand("pork", 0.85)
	got = f.Apply(cands)
	assert.Contains(t, got, "pork")
}

func TestFilter_SuffixOverlapPairsShareACluster(t *testing.T) {
	table, cfg := testPipelineParts(t)
	f := NewFilter(table, cfg)

	// Prefix overlaps are shadowed during matching; suffix overlaps like
	// "peanut butter" / "butter" reach the filter and must collapse here.
	pairs := [][2]string{
		{"peanut butter", "butter"},
		{"cottage cheese", "cheese"},
		{"mac and cheese", "cheese"},
		{"chicken soup", "soup"},
	}
	for _, pair := range pairs {
		got := f.Apply([]Candidate{cand(pair[0], 0.85), cand(pair[1], 0.85)})
		assert.Equal(t, []string{pair[0]}, got, "%q should absorb %q", pair[0], pair[1])
	}
}

func TestFilter_DishImplicationFoldsIngredients(t *testing.T) {
	table, cfg := testPipelineParts(t)
	f := NewFilter(table, cfg)

	got := f.Apply([]Candidate{
		cand("hamburger", 0.92),
		cand("beef", 0.90),
		cand("bread", 0.88),
	})
	assert.Equal(t, []string{"hamburger"}, got)
}

func TestFilter_CapKeepsBestScoresInFirstSeenOrder(t *testing.T) {
	table, cfg := testPipelineParts(t)
	f := NewFilter(table, cfg)

	got := f.Apply([]Candidate{
		cand("chicken breast", 0.90),
		cand("salmon", 0.90),
		cand("rice", 0.90),
		cand("broccoli", 0.90),
		cand("almonds", 0.90),
	})
	require.Len(t, got, cfg.Filtering.MaxItems)
	// "rice" loses the protein tiebreak to "broccoli"; order stays first-seen.
	assert.Equal(t, []string{"chicken breast", "salmon", "broccoli", "almonds"}, got)
}

func TestFilter_DedupeKeepsMaxConfidence(t *testing.T) {
	table, cfg := testPipelineParts(t)
	f := NewFilter(table, cfg)

	got := f.Apply([]Candidate{
		cand("pork", 0.55),
		cand("lettuce", 0.90),
		cand("tomato", 0.90),
		cand("cucumber", 0.90),
		cand("pork", 0.85),
	})
	// The 0.85 duplicate is what consensus must judge "pork" by.
	assert.Equal(t, []string{"pork", "lettuce", "tomato", "cucumber"}, got)
}

func TestFilter_EmptyAndSingleInputs(t *testing.T) {
	table, cfg := testPipelineParts(t)
	f := NewFilter(table, cfg)

	assert.Nil(t, f.Apply(nil))
	assert.Equal(t, []string{"tofu"}, f.Apply([]Candidate{cand("tofu", 0.61)}))
}

func TestFilter_Idempotent(t *testing.T) {
	table, cfg := testPipelineParts(t)
	f := NewFilter(table, cfg)

	first := f.Apply([]Candidate{
		cand("bacon", 0.80),
		cand("eggs", 0.80),
		cand("sausage", 0.80),
		cand("toast", 0.80),
	})
	again := make([]Candidate, 0, len(first))
	for _, n := range first {
		again = append(again, cand(n, 0.80))
	}
	assert.Equal(t, first, f.Apply(again))
}
