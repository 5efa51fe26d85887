package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortionEstimator_TargetTotalSteps(t *testing.T) {
	table, cfg := testPipelineParts(t)
	e := NewPortionEstimator(table, cfg)

	assert.Equal(t, 0.0, e.TargetTotal(0))
	assert.Equal(t, 120.0, e.TargetTotal(1))
	assert.Equal(t, 200.0, e.TargetTotal(2))
	assert.Equal(t, 300.0, e.TargetTotal(3))
	assert.Equal(t, 300.0, e.TargetTotal(4))
	assert.Equal(t, 400.0, e.TargetTotal(5))
	assert.Equal(t, 400.0, e.TargetTotal(9))
}

func TestPortionEstimator_SingleItemGetsWholeTarget(t *testing.T) {
	table, cfg := testPipelineParts(t)
	e := NewPortionEstimator(table, cfg)

	got := e.Portions([]string{"chicken breast"})
	require.Len(t, got, 1)
	assert.Equal(t, PortionedFood{Name: "chicken breast", Grams: 120}, got[0])
}

func TestPortionEstimator_DensityShapesTheSplit(t *testing.T) {
	table, cfg := testPipelineParts(t)
	e := NewPortionEstimator(table, cfg)

	got := e.Portions([]string{"bacon", "eggs", "sausage", "toast"})
	require.Len(t, got, 4)

	byName := make(map[string]float64, len(got))
	var sum float64
	for _, p := range got {
		byName[p.Name] = p.Grams
		sum += p.Grams
	}
	assert.InDelta(t, 300, sum, 1e-6)
	assert.Less(t, byName["bacon"], byName["eggs"], "calorie-dense bacon gets the small portion")
	assert.InDelta(t, byName["eggs"], byName["sausage"], 1e-6)
}

func TestPortionEstimator_SumMatchesTargetAfterRounding(t *testing.T) {
	table, cfg := testPipelineParts(t)
	e := NewPortionEstimator(table, cfg)

	// 39.13/130.43/130.43 before rounding; the drift lands on one portion.
	got := e.Portions([]string{"bacon", "eggs", "rice"})
	var sum float64
	for _, p := range got {
		sum += p.Grams
		assert.Equal(t, round1(p.Grams), p.Grams, "grams carry one decimal")
	}
	assert.InDelta(t, 300, sum, 1e-6)
}

func TestPortionEstimator_ClampPinsAndRedistributes(t *testing.T) {
	table, cfg := testPipelineParts(t)
	e := NewPortionEstimator(table, cfg)

	// One light item on a very crowded plate would scale below the minimum;
	// it gets pinned there and the rest absorb the difference.
	names := []string{"almonds"}
	for i := 0; i < 10; i++ {
		names = append(names, "chicken soup")
	}
	got := e.Portions(names)
	require.Len(t, got, 11)

	var sum float64
	for _, p := range got {
		sum += p.Grams
		assert.GreaterOrEqual(t, p.Grams, cfg.Portions.MinItemGrams)
		assert.LessOrEqual(t, p.Grams, cfg.Portions.MaxItemGrams)
	}
	assert.Equal(t, cfg.Portions.MinItemGrams, got[0].Grams, "light item pinned at the floor")
	assert.InDelta(t, e.TargetTotal(len(names)), sum, 1e-6)
}

func TestPortionEstimator_Empty(t *testing.T) {
	table, cfg := testPipelineParts(t)
	e := NewPortionEstimator(table, cfg)
	assert.Nil(t, e.Portions(nil))
}
