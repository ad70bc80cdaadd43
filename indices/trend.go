package indices

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Trend is a least-squares linear fit over an index time series sampled at
// uniform intervals.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	Direction string  `json:"trend_direction"` // increasing | decreasing | stable
}

// LinearTrend fits a line over values indexed 0..n-1. Fewer than two points
// yields the zero trend.
func LinearTrend(values []float64) Trend {
	if len(values) < 2 {
		return Trend{Direction: "stable"}
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	intercept, slope := stat.LinearRegression(xs, values, nil, false)
	r2 := stat.RSquared(xs, values, nil, intercept, slope)
	if math.IsNaN(r2) { // constant series: zero total variance
		r2 = 0
	}

	dir := "stable"
	switch {
	case slope > 0:
		dir = "increasing"
	case slope < 0:
		dir = "decreasing"
	}
	return Trend{Slope: slope, Intercept: intercept, RSquared: r2, Direction: dir}
}

// Categorize labels a scalar index value for reporting. Unknown indices are
// labeled "unknown".
func Categorize(index string, value float64) string {
	switch index {
	case IndexNDVI:
		switch {
		case value > 0.6:
			return "high_vegetation"
		case value > 0.3:
			return "moderate_vegetation"
		case value > 0.1:
			return "low_vegetation"
		default:
			return "sparse_vegetation"
		}
	case IndexEVI:
		switch {
		case value > 0.4:
			return "high_vegetation"
		case value > 0.2:
			return "moderate_vegetation"
		case value > 0.1:
			return "low_vegetation"
		default:
			return "sparse_vegetation"
		}
	case IndexNDWI:
		switch {
		case value > 0.3:
			return "high_water_content"
		case value > 0.1:
			return "moderate_water_content"
		default:
			return "low_water_content"
		}
	}
	return "unknown"
}
