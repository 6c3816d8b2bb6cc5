// Package stats provides the scalar statistics used by the beat detector
// threshold and the HRV metrics.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of data, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	// Use Kahan summation for numerical stability.
	var sum, c float64
	for _, x := range data {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(data))
}

// Median returns the median of data, or 0 for an empty slice.
// The input is not modified.
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Variance returns the population variance of data using Welford's online
// algorithm for numerical stability. Returns 0 for fewer than 2 samples.
func Variance(data []float64) float64 {
	n := len(data)
	if n < 2 {
		return 0
	}

	var mean, m2 float64
	for i, x := range data {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}

	return m2 / float64(n)
}

// StdDev returns the population standard deviation of data.
func StdDev(data []float64) float64 {
	return math.Sqrt(Variance(data))
}

// SampleVariance returns the sample variance (N-1 denominator) of data.
// Returns 0 for fewer than 2 samples.
func SampleVariance(data []float64) float64 {
	n := len(data)
	if n < 2 {
		return 0
	}

	var mean, m2 float64
	for i, x := range data {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}

	return m2 / float64(n-1)
}

// SampleStdDev returns the sample standard deviation (N-1 denominator)
// of data. Returns 0 for fewer than 2 samples.
func SampleStdDev(data []float64) float64 {
	return math.Sqrt(SampleVariance(data))
}

// MinMax returns the minimum and maximum of data.
// Returns (0, 0) for an empty slice.
func MinMax(data []float64) (min, max float64) {
	if len(data) == 0 {
		return 0, 0
	}

	min, max = data[0], data[0]
	for _, x := range data[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	return min, max
}
