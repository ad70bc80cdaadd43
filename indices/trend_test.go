package indices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearTrendIncreasing(t *testing.T) {
	tr := LinearTrend([]float64{0.1, 0.2, 0.3, 0.4})
	assert.InDelta(t, 0.1, tr.Slope, 1e-9)
	assert.InDelta(t, 0.1, tr.Intercept, 1e-9)
	assert.InDelta(t, 1.0, tr.RSquared, 1e-9)
	assert.Equal(t, "increasing", tr.Direction)
}

func TestLinearTrendConstantSeries(t *testing.T) {
	tr := LinearTrend([]float64{0.5, 0.5, 0.5})
	assert.Zero(t, tr.Slope)
	assert.Zero(t, tr.RSquared)
	assert.Equal(t, "stable", tr.Direction)
}

func TestLinearTrendTooFewPoints(t *testing.T) {
	tr := LinearTrend([]float64{0.7})
	assert.Zero(t, tr.Slope)
	assert.Equal(t, "stable", tr.Direction)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, "high_vegetation", Categorize(IndexNDVI, 0.7))
	assert.Equal(t, "moderate_vegetation", Categorize(IndexNDVI, 0.4))
	assert.Equal(t, "low_vegetation", Categorize(IndexNDVI, 0.2))
	assert.Equal(t, "sparse_vegetation", Categorize(IndexNDVI, 0.05))
	assert.Equal(t, "high_vegetation", Categorize(IndexEVI, 0.5))
	assert.Equal(t, "moderate_water_content", Categorize(IndexNDWI, 0.2))
	assert.Equal(t, "unknown", Categorize(IndexSAVI, 0.5))
}
