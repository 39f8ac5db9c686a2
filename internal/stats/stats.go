// Package stats provides the descriptive statistics used to aggregate
// benchmark sample sequences. All functions return zero values on empty
// input instead of failing, so callers can run them unconditionally
// over whatever samples a benchmark produced.
package stats

import (
	"math"
	"slices"
)

// Number covers the two sample kinds a benchmark records: signed timing
// samples (cycles or microseconds) and cache-miss percentages.
type Number interface {
	~int | ~int64 | ~uint64 | ~float64
}

// Mean returns the arithmetic mean of data, or 0 if data is empty.
func Mean[T Number](data []T) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	return sum / float64(len(data))
}

// Median returns the median of data, or 0 if data is empty. For an even
// number of samples the two true middle elements are averaged. The input
// is not modified; sorting happens on a working copy.
func Median[T Number](data []T) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	mid := n / 2
	if n%2 == 0 {
		return (float64(sorted[mid-1]) + float64(sorted[mid])) / 2
	}
	return float64(sorted[mid])
}

// Variance returns the population variance of data (divisor n, not n-1),
// or 0 if data is empty.
func Variance[T Number](data []T) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := Mean(data)
	var sumSq float64
	for _, v := range data {
		d := float64(v) - mean
		sumSq += d * d
	}
	return sumSq / float64(len(data))
}

// StdDev returns the population standard deviation of data, or 0 if data
// is empty.
func StdDev[T Number](data []T) float64 {
	return math.Sqrt(Variance(data))
}

// Min returns the smallest element of data in a single linear pass, or
// the zero value if data is empty.
func Min[T Number](data []T) T {
	var min T
	if len(data) == 0 {
		return min
	}
	min = data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest element of data in a single linear pass, or the
// zero value if data is empty.
func Max[T Number](data []T) T {
	var max T
	if len(data) == 0 {
		return max
	}
	max = data[0]
	for _, v := range data[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Summary holds the derived aggregates for one sample sequence.
type Summary[T Number] struct {
	Mean     float64
	Median   float64
	StdDev   float64
	Variance float64
	Min      T
	Max      T
}

// Summarize computes all aggregates for data in one call. An empty input
// yields an all-zero Summary.
func Summarize[T Number](data []T) Summary[T] {
	return Summary[T]{
		Mean:     Mean(data),
		Median:   Median(data),
		StdDev:   StdDev(data),
		Variance: Variance(data),
		Min:      Min(data),
		Max:      Max(data),
	}
}
