// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// A Dist is a continuous statistical distribution.
type Dist interface {
	// PDF returns the value of the probability density function
	// of this distribution at x.
	PDF(x float64) float64

	// PDFEach returns PDF(xs[i]) for each i.
	PDFEach(xs []float64) []float64

	// CDF returns the value of the cumulative distribution
	// function for this distribution at x.
	CDF(x float64) float64

	// CDFEach returns CDF(xs[i]) for each i.
	CDFEach(xs []float64) []float64

	// Bounds returns reasonable bounds for this distribution's
	// PDF and CDF. The total weight outside of these bounds
	// should be approximately 0.
	Bounds() (float64, float64)
}

// A Belief is a distribution over a real vector that represents the
// current knowledge of an estimator.
//
// Beliefs are mutable. The estimator that produced a belief owns it
// and may revise it in place on the next update.
type Belief interface {
	// Dim returns the dimension of the vectors the belief is
	// over.
	Dim() int

	// MeanVec stores the mean of the belief in dst and returns
	// it. If dst is nil, a new slice is allocated.
	MeanVec(dst []float64) []float64

	// CovarianceMatrix stores the covariance of the belief in
	// dst. If dst is empty it is resized to Dim()×Dim().
	CovarianceMatrix(dst *mat.SymDense)

	// Rand stores a random draw from the belief in dst and
	// returns it. If dst is nil, a new slice is allocated.
	Rand(dst []float64, rng *rand.Rand) []float64
}

// An Evaluator computes an output from an input. Evaluators stand for
// models, transition functions, and densities throughout this module.
type Evaluator[I, O any] interface {
	Evaluate(in I) O
}

// EvaluatorFunc adapts an ordinary function to an Evaluator.
type EvaluatorFunc[I, O any] func(I) O

// Evaluate returns f(in).
func (f EvaluatorFunc[I, O]) Evaluate(in I) O {
	return f(in)
}

// A Prior is a univariate distribution that can score parameter
// values and be sampled by inversion. The gonum distuv distributions
// (Beta, Normal, Gamma, Uniform, ...) all satisfy it.
type Prior interface {
	// LogProb returns the log density of the prior at x.
	LogProb(x float64) float64

	// Quantile returns the inverse of the prior's CDF at p.
	Quantile(p float64) float64
}

// SamplePrior draws from p by inverting its CDF at a uniform variate
// taken from rng.
func SamplePrior(p Prior, rng *rand.Rand) float64 {
	return p.Quantile(rng.Float64())
}
