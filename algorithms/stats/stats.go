package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Basic statistical helpers shared across the analysis packages,
// built on gonum for robustness.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// PearsonCorrelation computes the Pearson correlation coefficient
// between two equal-length vectors. A degenerate input (length
// mismatch, empty vectors, or a constant vector, where the
// coefficient is undefined) yields 0 rather than NaN; callers rely on
// 0 meaning "no usable correlation".
func PearsonCorrelation(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0.0
	}
	return r
}

// Dot computes the dot product of two equal-length vectors.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
