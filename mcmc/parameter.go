// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcmc

import (
	"golang.org/x/exp/rand"

	"github.com/aclements/go-moreinfer/stats"
)

// RandomWalk is a Gaussian random-walk Updater over a scalar
// BayesianParameter with real-valued observations.
type RandomWalk struct {
	Param *stats.BayesianParameter

	// Step is the standard deviation of a proposal step.
	Step float64
}

// InitialParameter starts the chain at the prior median.
func (w *RandomWalk) InitialParameter(rng *rand.Rand) float64 {
	return w.Param.Prior.Quantile(0.5)
}

func (w *RandomWalk) Propose(cur float64, rng *rand.Rand) (float64, float64) {
	return cur + w.Step*rng.NormFloat64(), 0
}

func (w *RandomWalk) LogLikelihood(theta float64, data []float64) float64 {
	return w.Param.LogLikelihood(theta, data)
}

func (w *RandomWalk) LogPrior(theta float64) float64 {
	return w.Param.Prior.LogProb(theta)
}
