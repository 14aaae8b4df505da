// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Empirical is a weighted set of values of any type. It represents a
// belief by its draws: the particles of a particle filter, or the
// parameter values retained by a Markov chain.
//
// Values may repeat. After resampling, a value drawn several times
// appears several times, so the number of particles is preserved.
// Use Histogram to view the distinct values.
type Empirical[T any] struct {
	Values []T

	// Weights[i] is the unnormalized weight of Values[i]. Weights
	// must have the same length as Values and be non-negative.
	Weights []float64
}

// NewEmpirical returns an Empirical over values with the given
// weights. If weights is nil, every value has weight 1.
func NewEmpirical[T any](values []T, weights []float64) (*Empirical[T], error) {
	if weights == nil {
		return UniformEmpirical(values), nil
	}
	if len(values) != len(weights) {
		return nil, ErrSampleSize
	}
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, ErrNonPositive
		}
	}
	return &Empirical[T]{Values: values, Weights: weights}, nil
}

// UniformEmpirical returns an Empirical giving each value weight 1.
func UniformEmpirical[T any](values []T) *Empirical[T] {
	ws := make([]float64, len(values))
	for i := range ws {
		ws[i] = 1
	}
	return &Empirical[T]{Values: values, Weights: ws}
}

// Add appends a value with weight w.
func (e *Empirical[T]) Add(v T, w float64) {
	e.Values = append(e.Values, v)
	e.Weights = append(e.Weights, w)
}

func (e *Empirical[T]) Len() int {
	return len(e.Values)
}

func (e *Empirical[T]) TotalWeight() float64 {
	return floats.Sum(e.Weights)
}

// MaxWeight returns the largest single weight.
func (e *Empirical[T]) MaxWeight() float64 {
	if len(e.Weights) == 0 {
		return 0
	}
	return floats.Max(e.Weights)
}

// Normalize scales the weights to sum to 1. It returns ErrZeroWeight,
// leaving the weights unchanged, if they sum to 0.
func (e *Empirical[T]) Normalize() error {
	total := e.TotalWeight()
	if !(total > 0) || math.IsInf(total, 1) {
		return ErrZeroWeight
	}
	floats.Scale(1/total, e.Weights)
	return nil
}

// EffectiveSampleSize returns (Σw)²/Σw², the number of equally
// weighted values that would carry as much information as e.
func (e *Empirical[T]) EffectiveSampleSize() float64 {
	sum := e.TotalWeight()
	sq := floats.Dot(e.Weights, e.Weights)
	if sq == 0 {
		return 0
	}
	return sum * sum / sq
}

// Draw returns one value chosen with probability proportional to its
// weight. It panics with ErrZeroWeight if no value has weight.
func (e *Empirical[T]) Draw(rng *rand.Rand) T {
	cum := e.cumulative()
	return e.Values[searchCumulative(cum, rng)]
}

// Resample replaces e by n values drawn with replacement in
// proportion to their weights, each with weight 1.
func (e *Empirical[T]) Resample(rng *rand.Rand, n int) {
	cum := e.cumulative()
	values := make([]T, n)
	for i := range values {
		values[i] = e.Values[searchCumulative(cum, rng)]
	}
	e.Values = values
	e.Weights = make([]float64, n)
	for i := range e.Weights {
		e.Weights[i] = 1
	}
}

func (e *Empirical[T]) cumulative() []float64 {
	if len(e.Weights) != len(e.Values) {
		panic(ErrSampleSize)
	}
	cum := floats.CumSum(make([]float64, len(e.Weights)), e.Weights)
	if len(cum) == 0 || !(cum[len(cum)-1] > 0) {
		panic(ErrZeroWeight)
	}
	return cum
}

func searchCumulative(cum []float64, rng *rand.Rand) int {
	u := rng.Float64() * cum[len(cum)-1]
	i := sort.SearchFloat64s(cum, u)
	// Skip zero-weight values sharing u's position.
	for i < len(cum)-1 && cum[i] <= u {
		i++
	}
	return i
}

// Clone returns a copy of e. If copyValue is non-nil it is used to
// deep-copy each value.
func (e *Empirical[T]) Clone(copyValue func(T) T) *Empirical[T] {
	c := &Empirical[T]{
		Values:  append([]T(nil), e.Values...),
		Weights: append([]float64(nil), e.Weights...),
	}
	if copyValue != nil {
		for i, v := range c.Values {
			c.Values[i] = copyValue(v)
		}
	}
	return c
}

// Sample projects each value to a scalar and returns the weighted
// Sample of the projections.
func (e *Empirical[T]) Sample(project func(T) float64) Sample {
	xs := make([]float64, len(e.Values))
	for i, v := range e.Values {
		xs[i] = project(v)
	}
	return Sample{Xs: xs, Weights: append([]float64(nil), e.Weights...)}
}

// Mean returns the weighted mean of a scalar projection of e.
func (e *Empirical[T]) Mean(project func(T) float64) float64 {
	return e.Sample(project).Mean()
}

// Project maps each value to a vector and returns the vector belief.
// All projections must have the same length.
func (e *Empirical[T]) Project(f func(T) []float64) Belief {
	vs := make([][]float64, len(e.Values))
	for i, v := range e.Values {
		vs[i] = f(v)
	}
	return &vectorEmpirical{Empirical[[]float64]{Values: vs, Weights: append([]float64(nil), e.Weights...)}}
}

// vectorEmpirical is an Empirical over real vectors, which makes it a
// Belief.
type vectorEmpirical struct {
	Empirical[[]float64]
}

func (v *vectorEmpirical) Dim() int {
	if len(v.Values) == 0 {
		return 0
	}
	return len(v.Values[0])
}

func (v *vectorEmpirical) MeanVec(dst []float64) []float64 {
	d := v.Dim()
	if dst == nil {
		dst = make([]float64, d)
	}
	col := make([]float64, len(v.Values))
	for j := 0; j < d; j++ {
		for i, x := range v.Values {
			col[i] = x[j]
		}
		dst[j] = stat.Mean(col, v.Weights)
	}
	return dst
}

// CovarianceMatrix stores the weighted population covariance in dst,
// matching Sample.Variance for weighted samples.
func (v *vectorEmpirical) CovarianceMatrix(dst *mat.SymDense) {
	d := v.Dim()
	if dst.IsEmpty() {
		dst.ReuseAsSym(d)
	}
	dst.Zero()
	total := v.TotalWeight()
	if total == 0 {
		return
	}
	mean := v.MeanVec(nil)
	dev := make([]float64, d)
	for k, x := range v.Values {
		floats.SubTo(dev, x, mean)
		w := v.Weights[k] / total
		for i := 0; i < d; i++ {
			for j := i; j < d; j++ {
				dst.SetSym(i, j, dst.At(i, j)+w*dev[i]*dev[j])
			}
		}
	}
}

func (v *vectorEmpirical) Rand(dst []float64, rng *rand.Rand) []float64 {
	x := v.Draw(rng)
	if dst == nil {
		dst = make([]float64, len(x))
	}
	copy(dst, x)
	return dst
}
