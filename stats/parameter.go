// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// A BayesianParameter is an unknown scalar θ with a prior and a
// conditional model p(x | θ) for observations.
type BayesianParameter struct {
	Name string

	// Conditional returns the distribution of one observation
	// given θ.
	Conditional func(theta float64) distuv.LogProber

	Prior Prior
}

// Validate reports whether p is usable.
func (p *BayesianParameter) Validate() error {
	if p.Conditional == nil || p.Prior == nil {
		return errors.New("parameter " + p.Name + " needs a conditional model and a prior")
	}
	return nil
}

// LogLikelihood returns Σ log p(x | θ) over data.
func (p *BayesianParameter) LogLikelihood(theta float64, data []float64) float64 {
	c := p.Conditional(theta)
	var ll float64
	for _, x := range data {
		ll += c.LogProb(x)
	}
	return ll
}

// LogPosterior returns the unnormalized log posterior
// log p(θ) + Σ log p(x | θ). It is -Inf outside the prior's support
// without evaluating the likelihood there.
func (p *BayesianParameter) LogPosterior(theta float64, data []float64) float64 {
	lp := p.Prior.LogProb(theta)
	if math.IsInf(lp, -1) || math.IsNaN(lp) {
		return math.Inf(-1)
	}
	return lp + p.LogLikelihood(theta, data)
}

// SamplePrior draws θ from the prior.
func (p *BayesianParameter) SamplePrior(rng *rand.Rand) float64 {
	return SamplePrior(p.Prior, rng)
}

// BinomialModel returns the parameter of a success probability
// observed through counts of successes in n trials each, with the
// given prior.
func BinomialModel(name string, n int, prior Prior) *BayesianParameter {
	return &BayesianParameter{
		Name: name,
		Conditional: func(theta float64) distuv.LogProber {
			return BinomialDist{N: n, P: theta}
		},
		Prior: prior,
	}
}
