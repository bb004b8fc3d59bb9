// Package outcome answers empirical questions about career-earnings samples:
// survival probabilities and bucketed outcome distributions.
package outcome

import (
	"fmt"
	"sort"
)

// Sample is an immutable, ascending-sorted set of observed career earnings ($).
type Sample struct {
	values []float64
}

// NewSample copies values and rejects unsorted input.
func NewSample(values ...float64) (Sample, error) {
	if !sort.Float64sAreSorted(values) {
		return Sample{}, ErrUnsortedSample
	}
	return Sample{values: append([]float64(nil), values...)}, nil
}

// MustSample is NewSample for compiled-in tables.
func MustSample(values ...float64) Sample {
	s, err := NewSample(values...)
	if err != nil {
		panic(err)
	}
	return s
}

// Pool merges samples into one sorted sample.
func Pool(samples ...Sample) Sample {
	n := 0
	for _, s := range samples {
		n += len(s.values)
	}
	merged := make([]float64, 0, n)
	for _, s := range samples {
		merged = append(merged, s.values...)
	}
	sort.Float64s(merged)
	return Sample{values: merged}
}

// Len is the number of observations.
func (s Sample) Len() int { return len(s.values) }

// Empty reports whether the sample has no observations.
func (s Sample) Empty() bool { return len(s.values) == 0 }

// Values returns a copy of the observations.
func (s Sample) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// LowerBound returns the first index whose value is >= threshold, or Len()
// when every value is below it.
func (s Sample) LowerBound(threshold float64) int {
	return LowerBound(s.values, threshold)
}

// ProbAtLeast is the empirical P(earnings >= threshold). Ties count as at or
// above the threshold.
func (s Sample) ProbAtLeast(threshold float64) (float64, error) {
	n := len(s.values)
	if n == 0 {
		return 0, ErrEmptySample
	}
	return float64(n-s.LowerBound(threshold)) / float64(n), nil
}

// LowerBound is a binary search over an ascending slice: the search space
// halves each step and the loop ends when lo == hi.
func LowerBound(sorted []float64, threshold float64) int {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if sorted[mid] < threshold {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (s Sample) String() string {
	return fmt.Sprintf("sample(n=%d)", len(s.values))
}
