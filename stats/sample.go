// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is a collection of possibly weighted data points.
//
// Samples are how the scalar summaries of an empirical belief are
// computed: project the belief with Empirical.Sample and then ask for
// the mean, quantiles, a credible interval, or a KDE.
type Sample struct {
	// Xs is the slice of sample values.
	Xs []float64

	// Weights[i] is the weight of sample Xs[i]. If Weights is
	// nil, all Xs have weight 1. Weights must have the same
	// length of Xs and all values must be non-negative.
	//
	// Weights are treated as probability weights: they need not
	// sum to 1, but they are not counts of repeated
	// observations.
	Weights []float64

	// Sorted indicates that Xs is sorted in ascending order.
	Sorted bool
}

func (s Sample) check() {
	if s.Weights != nil && len(s.Xs) != len(s.Weights) {
		panic("len(xs) != len(weights)")
	}
}

// Bounds returns the minimum and maximum values of the Sample.
//
// If the Sample is weighted, this ignores samples with zero weight.
//
// This is constant time if s.Sorted and there are no zero-weighted
// values.
func (s Sample) Bounds() (min float64, max float64) {
	s.check()
	if len(s.Xs) == 0 {
		return nan, nan
	}
	if s.Weights == nil {
		if s.Sorted {
			return s.Xs[0], s.Xs[len(s.Xs)-1]
		}
		return floats.Min(s.Xs), floats.Max(s.Xs)
	}

	min, max = inf, -inf
	for i, x := range s.Xs {
		if s.Weights[i] == 0 {
			continue
		}
		min, max = math.Min(min, x), math.Max(max, x)
	}
	if math.IsInf(min, 1) {
		return nan, nan
	}
	return
}

// Sum returns the (possibly weighted) sum of the Sample.
func (s Sample) Sum() float64 {
	s.check()
	if s.Weights == nil {
		return floats.Sum(s.Xs)
	}
	return floats.Dot(s.Xs, s.Weights)
}

// Weight returns the total weight of the Sample.
func (s Sample) Weight() float64 {
	s.check()
	if s.Weights == nil {
		return float64(len(s.Xs))
	}
	return floats.Sum(s.Weights)
}

// Mean returns the arithmetic mean of the Sample.
func (s Sample) Mean() float64 {
	s.check()
	if len(s.Xs) == 0 || s.Weight() == 0 {
		return nan
	}
	return stat.Mean(s.Xs, s.Weights)
}

// Variance returns the variance of the Sample.
//
// An unweighted sample uses the unbiased (n-1) estimator. A weighted
// sample uses the weighted population variance, since probability
// weights carry no notion of a sample size.
func (s Sample) Variance() float64 {
	s.check()
	if s.Weights == nil {
		if len(s.Xs) < 2 {
			return 0
		}
		return stat.Variance(s.Xs, nil)
	}
	if s.Weight() == 0 {
		return nan
	}
	return stat.PopVariance(s.Xs, s.Weights)
}

// StdDev returns the standard deviation of the Sample.
func (s Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Quantile returns the q'th quantile of the Sample, using the
// empirical CDF. q is clamped to [0, 1].
//
// This is constant time if s.Sorted and s.Weights == nil.
func (s Sample) Quantile(q float64) float64 {
	s.check()
	if len(s.Xs) == 0 {
		return nan
	}
	if !s.Sorted {
		s = *s.Copy().Sort()
	}
	q = math.Max(0, math.Min(1, q))
	return stat.Quantile(q, stat.Empirical, s.Xs, s.Weights)
}

// Percentile is an alias for Quantile. It is what the bandwidth
// estimators ask for.
func (s Sample) Percentile(q float64) float64 {
	return s.Quantile(q)
}

// CredibleInterval returns the equal-tailed interval holding the
// given probability mass of the Sample. For a sample drawn from a
// posterior this is the posterior credible interval.
func (s Sample) CredibleInterval(mass float64) (lo, hi float64) {
	if mass < 0 || mass > 1 {
		panic(ErrInvalidProbability)
	}
	if !s.Sorted {
		s = *s.Copy().Sort()
	}
	tail := (1 - mass) / 2
	return s.Quantile(tail), s.Quantile(1 - tail)
}

// Copy returns a copy of the Sample.
//
// The returned Sample shares no data with the original, so they can
// be modified (for example, sorted) independently.
func (s Sample) Copy() *Sample {
	xs := append([]float64(nil), s.Xs...)
	var weights []float64
	if s.Weights != nil {
		weights = append([]float64(nil), s.Weights...)
	}
	return &Sample{xs, weights, s.Sorted}
}

// Sort sorts the samples in place in s and returns s.
//
// A sorted sample improves the performance of some algorithms.
func (s *Sample) Sort() *Sample {
	if s.Sorted || sort.Float64sAreSorted(s.Xs) {
		// All set
	} else if s.Weights == nil {
		sort.Float64s(s.Xs)
	} else {
		sort.Sort(&sampleSorter{s.Xs, s.Weights})
	}
	s.Sorted = true
	return s
}

type sampleSorter struct {
	xs      []float64
	weights []float64
}

func (p *sampleSorter) Len() int {
	return len(p.xs)
}

func (p *sampleSorter) Less(i, j int) bool {
	return p.xs[i] < p.xs[j]
}

func (p *sampleSorter) Swap(i, j int) {
	p.xs[i], p.xs[j] = p.xs[j], p.xs[i]
	p.weights[i], p.weights[j] = p.weights[j], p.weights[i]
}
