package indices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsKnownValues(t *testing.T) {
	got := Statistics(map[string]Grid{
		"ndvi": {{0.2, 0.4}, {0.6, 0.8}},
	})
	require.Contains(t, got, "ndvi")

	s := got["ndvi"]
	assert.InDelta(t, 0.5, s.Mean, 1e-9)
	assert.InDelta(t, 0.2, s.Min, 1e-9)
	assert.InDelta(t, 0.8, s.Max, 1e-9)
	assert.InDelta(t, 0.5, s.Median, 1e-9)
	assert.Equal(t, 4, s.ValidPixels)
	assert.Equal(t, 4, s.TotalPixels)
}

func TestStatisticsSkipsNonFiniteValues(t *testing.T) {
	got := Statistics(map[string]Grid{
		"evi": {{0.3, math.NaN()}, {math.Inf(1), 0.5}},
	})
	s := got["evi"]
	assert.InDelta(t, 0.4, s.Mean, 1e-9)
	assert.Equal(t, 2, s.ValidPixels)
	assert.Equal(t, 4, s.TotalPixels)
}

func TestStatisticsNoFiniteValues(t *testing.T) {
	got := Statistics(map[string]Grid{
		"gci": {{math.NaN(), math.NaN()}},
	})
	s := got["gci"]
	assert.Zero(t, s.Mean)
	assert.Zero(t, s.Std)
	assert.Zero(t, s.Min)
	assert.Zero(t, s.Max)
	assert.Zero(t, s.Median)
	assert.Equal(t, 0, s.ValidPixels)
	assert.Equal(t, 2, s.TotalPixels)
}
