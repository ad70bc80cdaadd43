package indices

import (
	"math"

	"github.com/montanaflynn/stats"
)

// IndexStats summarizes one computed index grid over its finite values.
type IndexStats struct {
	Mean         float64 `json:"mean"`
	Std          float64 `json:"std"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Median       float64 `json:"median"`
	Percentile25 float64 `json:"percentile_25"`
	Percentile75 float64 `json:"percentile_75"`
	ValidPixels  int     `json:"valid_pixels"`
	TotalPixels  int     `json:"total_pixels"`
}

// Statistics computes per-index summary statistics over finite values only.
// An index with no finite values yields an all-zero record with the pixel
// counts preserved.
func Statistics(grids map[string]Grid) map[string]IndexStats {
	out := make(map[string]IndexStats, len(grids))
	for name, g := range grids {
		out[name] = gridStats(g)
	}
	return out
}

func gridStats(g Grid) IndexStats {
	total := 0
	valid := make([]float64, 0, len(g)*cols(g))
	for i := range g {
		for j := range g[i] {
			total++
			if v := g[i][j]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				valid = append(valid, v)
			}
		}
	}
	if len(valid) == 0 {
		return IndexStats{TotalPixels: total}
	}

	// stats package errors only on empty input, which is excluded above.
	mean, _ := stats.Mean(valid)
	std, _ := stats.StandardDeviation(valid)
	min, _ := stats.Min(valid)
	max, _ := stats.Max(valid)
	median, _ := stats.Median(valid)
	p25, _ := stats.Percentile(valid, 25)
	p75, _ := stats.Percentile(valid, 75)

	return IndexStats{
		Mean:         mean,
		Std:          std,
		Min:          min,
		Max:          max,
		Median:       median,
		Percentile25: p25,
		Percentile75: p75,
		ValidPixels:  len(valid),
		TotalPixels:  total,
	}
}

func cols(g Grid) int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}
