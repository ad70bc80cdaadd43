package carbon

import "math"

// Scaler standardizes feature columns to zero mean and unit variance,
// mirroring the transform the model was trained with. Constant-valued
// columns keep unit scale so the transform stays finite.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitScaler computes per-column mean and standard deviation over rows.
// Fit on training features only; validation data must reuse the fitted
// transform.
func FitScaler(rows [][]float64) *Scaler {
	n := len(rows)
	if n == 0 {
		return &Scaler{}
	}
	cols := len(rows[0])
	mean := make([]float64, cols)
	scale := make([]float64, cols)

	for _, r := range rows {
		for j, v := range r {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}
	for _, r := range rows {
		for j, v := range r {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / float64(n))
		if scale[j] == 0 {
			scale[j] = 1
		}
	}
	return &Scaler{Mean: mean, Scale: scale}
}

// Transform returns a scaled copy of row.
func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out
}

// TransformAll scales every row.
func (s *Scaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = s.Transform(r)
	}
	return out
}
