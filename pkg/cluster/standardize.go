package cluster

import "math"

// Scaler holds per-column mean and scale of a standardized matrix.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

// Standardize rescales every column to zero mean and unit population
// variance. Columns with zero variance keep a scale of 1 and so become all
// zeros. The input is not modified.
func Standardize(x [][]float64) ([][]float64, Scaler) {
	if len(x) == 0 {
		return nil, Scaler{}
	}
	cols := len(x[0])
	s := Scaler{Mean: make([]float64, cols), Scale: make([]float64, cols)}
	n := float64(len(x))

	for _, row := range x {
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= n
	}
	for _, row := range x {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Scale[j] += d * d
		}
	}
	for j := range s.Scale {
		sd := math.Sqrt(s.Scale[j] / n)
		if sd < 1e-12 {
			sd = 1
		}
		s.Scale[j] = sd
	}

	out := make([][]float64, len(x))
	for i, row := range x {
		z := make([]float64, cols)
		for j, v := range row {
			z[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = z
	}
	return out, s
}

// Inverse maps a standardized row back to the original feature units.
func (s Scaler) Inverse(z []float64) []float64 {
	out := make([]float64, len(z))
	for j, v := range z {
		out[j] = v*s.Scale[j] + s.Mean[j]
	}
	return out
}
