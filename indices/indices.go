// Package indices computes vegetation and water spectral indices from
// reflectance band grids. All formulas substitute a small epsilon for zero
// denominators and clamp results to their documented valid range, so index
// math never produces NaN or Inf.
package indices

import (
	"errors"
	"fmt"
	"log"
)

// Grid is one spectral band (or one computed index) as a row-major 2D grid.
// Reflectance values are expected in [0, 1] but are not enforced.
type Grid [][]float64

// Band names accepted by CalculateAll and ValidateBands.
const (
	BandRed   = "red"
	BandNIR   = "nir"
	BandBlue  = "blue"
	BandGreen = "green"
	BandSWIR  = "swir"
)

// Index names produced by CalculateAll.
const (
	IndexNDVI = "ndvi"
	IndexEVI  = "evi"
	IndexSAVI = "savi"
	IndexNDWI = "ndwi"
	IndexGCI  = "gci"
)

// epsilon replaces zero denominators before division.
const epsilon = 1e-10

// saviL is the soil brightness correction factor for SAVI.
const saviL = 0.5

// ErrInvalidBands reports band data unsuitable for index calculation.
var ErrInvalidBands = errors.New("invalid band data")

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func safeDenom(d float64) float64 {
	if d == 0 {
		return epsilon
	}
	return d
}

// apply builds an output grid the same shape as ref, computing each cell
// from the cell index.
func apply(ref Grid, f func(row, col int) float64) Grid {
	out := make(Grid, len(ref))
	for i := range ref {
		out[i] = make([]float64, len(ref[i]))
		for j := range ref[i] {
			out[i][j] = f(i, j)
		}
	}
	return out
}

// NDVI computes the Normalized Difference Vegetation Index:
// (NIR - Red) / (NIR + Red), clamped to [-1, 1].
func NDVI(red, nir Grid) Grid {
	return apply(nir, func(i, j int) float64 {
		v := (nir[i][j] - red[i][j]) / safeDenom(nir[i][j]+red[i][j])
		return clamp(v, -1, 1)
	})
}

// EVI computes the Enhanced Vegetation Index:
// 2.5 * (NIR - Red) / (NIR + 6*Red - 7.5*Blue + 1), clamped to [-1, 1].
func EVI(nir, red, blue Grid) Grid {
	return apply(nir, func(i, j int) float64 {
		d := safeDenom(nir[i][j] + 6*red[i][j] - 7.5*blue[i][j] + 1)
		return clamp(2.5*(nir[i][j]-red[i][j])/d, -1, 1)
	})
}

// SAVI computes the Soil Adjusted Vegetation Index:
// (NIR - Red) / (NIR + Red + L) * (1 + L) with L = 0.5, clamped to [-1, 1].
func SAVI(nir, red Grid) Grid {
	return apply(nir, func(i, j int) float64 {
		d := safeDenom(nir[i][j] + red[i][j] + saviL)
		return clamp((nir[i][j]-red[i][j])/d*(1+saviL), -1, 1)
	})
}

// NDWI computes the Normalized Difference Water Index:
// (NIR - SWIR) / (NIR + SWIR), clamped to [-1, 1].
func NDWI(nir, swir Grid) Grid {
	return apply(nir, func(i, j int) float64 {
		v := (nir[i][j] - swir[i][j]) / safeDenom(nir[i][j]+swir[i][j])
		return clamp(v, -1, 1)
	})
}

// GCI computes the Green Chlorophyll Index: (NIR / Green) - 1,
// clamped to [-1, 10].
func GCI(nir, green Grid) Grid {
	return apply(nir, func(i, j int) float64 {
		return clamp(nir[i][j]/safeDenom(green[i][j])-1, -1, 10)
	})
}

// CalculateAll computes every index whose required bands are present and
// skips the rest. The returned map may be partial or empty.
func CalculateAll(bands map[string]Grid) map[string]Grid {
	out := make(map[string]Grid)

	red, hasRed := bands[BandRed]
	nir, hasNIR := bands[BandNIR]
	blue, hasBlue := bands[BandBlue]
	green, hasGreen := bands[BandGreen]
	swir, hasSWIR := bands[BandSWIR]

	if hasRed && hasNIR {
		out[IndexNDVI] = NDVI(red, nir)
		out[IndexSAVI] = SAVI(nir, red)
	}
	if hasRed && hasNIR && hasBlue {
		out[IndexEVI] = EVI(nir, red, blue)
	}
	if hasNIR && hasSWIR {
		out[IndexNDWI] = NDWI(nir, swir)
	}
	if hasNIR && hasGreen {
		out[IndexGCI] = GCI(nir, green)
	}
	return out
}

// ValidateBands checks that red and nir are present and that every band
// shares one common shape. Values outside [0, 1] only produce a warning.
func ValidateBands(bands map[string]Grid) error {
	for _, required := range []string{BandRed, BandNIR} {
		if _, ok := bands[required]; !ok {
			return fmt.Errorf("%w: required band %q not found", ErrInvalidBands, required)
		}
	}

	rows, cols := -1, -1
	for name, g := range bands {
		r, c := shape(g)
		for i := range g {
			if len(g[i]) != c {
				return fmt.Errorf("%w: band %q has ragged rows", ErrInvalidBands, name)
			}
		}
		if rows == -1 {
			rows, cols = r, c
			continue
		}
		if r != rows || c != cols {
			return fmt.Errorf("%w: band %q shape %dx%d differs from %dx%d",
				ErrInvalidBands, name, r, c, rows, cols)
		}
	}

	for name, g := range bands {
		if outOfRange(g) {
			log.Printf("band %q contains values outside expected range [0, 1]", name)
		}
	}
	return nil
}

// shape returns grid dimensions; a ragged grid reports the first row width.
func shape(g Grid) (rows, cols int) {
	rows = len(g)
	if rows > 0 {
		cols = len(g[0])
	}
	return rows, cols
}

func outOfRange(g Grid) bool {
	for i := range g {
		for j := range g[i] {
			if g[i][j] < 0 || g[i][j] > 1 {
				return true
			}
		}
	}
	return false
}
