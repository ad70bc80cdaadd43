package indices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(rows, cols int, v float64) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]float64, cols)
		for j := range g[i] {
			g[i][j] = v
		}
	}
	return g
}

func TestNDVIUniformGrid(t *testing.T) {
	red := uniform(2, 2, 0.1)
	nir := uniform(2, 2, 0.5)

	got := NDVI(red, nir)
	want := (0.5 - 0.1) / (0.5 + 0.1)
	for i := range got {
		for j := range got[i] {
			assert.InDelta(t, want, got[i][j], 1e-9)
		}
	}
}

func TestIndicesClampedToValidRange(t *testing.T) {
	// Values outside [0,1] push raw index values past the clamp bounds.
	red := uniform(2, 2, -5)
	nir := uniform(2, 2, 5)
	blue := uniform(2, 2, 3)
	green := uniform(2, 2, 0.01)
	swir := uniform(2, 2, -5)

	checks := []struct {
		name   string
		grid   Grid
		lo, hi float64
	}{
		{"ndvi", NDVI(red, nir), -1, 1},
		{"evi", EVI(nir, red, blue), -1, 1},
		{"savi", SAVI(nir, red), -1, 1},
		{"ndwi", NDWI(nir, swir), -1, 1},
		{"gci", GCI(nir, green), -1, 10},
	}
	for _, c := range checks {
		for i := range c.grid {
			for j := range c.grid[i] {
				v := c.grid[i][j]
				assert.GreaterOrEqual(t, v, c.lo, c.name)
				assert.LessOrEqual(t, v, c.hi, c.name)
			}
		}
	}
}

func TestDegenerateDenominatorsStayFinite(t *testing.T) {
	zero := uniform(2, 2, 0)

	for name, grid := range map[string]Grid{
		"ndvi": NDVI(zero, zero),
		"evi":  EVI(zero, zero, uniform(2, 2, 1.0/7.5)), // denominator exactly zero
		"ndwi": NDWI(zero, zero),
		"gci":  GCI(zero, zero),
	} {
		for i := range grid {
			for j := range grid[i] {
				v := grid[i][j]
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s produced non-finite value", name)
			}
		}
	}
}

func TestCalculateAllPartialBands(t *testing.T) {
	bands := map[string]Grid{
		BandRed: uniform(2, 2, 0.1),
		BandNIR: uniform(2, 2, 0.5),
	}
	got := CalculateAll(bands)

	assert.Contains(t, got, IndexNDVI)
	assert.Contains(t, got, IndexSAVI)
	assert.NotContains(t, got, IndexEVI)
	assert.NotContains(t, got, IndexNDWI)
	assert.NotContains(t, got, IndexGCI)

	bands[BandBlue] = uniform(2, 2, 0.05)
	bands[BandGreen] = uniform(2, 2, 0.2)
	bands[BandSWIR] = uniform(2, 2, 0.3)
	got = CalculateAll(bands)
	assert.Len(t, got, 5)
}

func TestCalculateAllEmpty(t *testing.T) {
	assert.Empty(t, CalculateAll(map[string]Grid{BandBlue: uniform(1, 1, 0.5)}))
}

func TestValidateBands(t *testing.T) {
	ok := map[string]Grid{
		BandRed: uniform(2, 3, 0.2),
		BandNIR: uniform(2, 3, 0.6),
	}
	require.NoError(t, ValidateBands(ok))

	missing := map[string]Grid{BandRed: uniform(2, 2, 0.2)}
	err := ValidateBands(missing)
	require.ErrorIs(t, err, ErrInvalidBands)

	mismatched := map[string]Grid{
		BandRed: uniform(2, 2, 0.2),
		BandNIR: uniform(3, 2, 0.6),
	}
	err = ValidateBands(mismatched)
	require.ErrorIs(t, err, ErrInvalidBands)

	ragged := map[string]Grid{
		BandRed: {{0.1, 0.2}, {0.3}},
		BandNIR: uniform(2, 2, 0.6),
	}
	err = ValidateBands(ragged)
	require.ErrorIs(t, err, ErrInvalidBands)
}

func TestValidateBandsOutOfRangeIsNonFatal(t *testing.T) {
	bands := map[string]Grid{
		BandRed: uniform(2, 2, 1.7),
		BandNIR: uniform(2, 2, 0.6),
	}
	assert.NoError(t, ValidateBands(bands))
}
