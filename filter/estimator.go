// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filter implements recursive Bayesian estimators.
//
// An estimator keeps a belief about a hidden state and revises it one
// observation at a time. Each step is a Predict, which advances the
// belief through the state transition without evidence, followed by an
// Update, which conditions it on one observation. Kalman is exact for
// linear-Gaussian models, Extended linearizes a nonlinear model around
// the current mean, and Particle represents the belief by a weighted
// sample.
//
// Beliefs are updated in place. The estimator that is updating a
// belief owns it; clone it to keep an independent copy.
package filter // import "github.com/aclements/go-moreinfer/filter"

import "fmt"

// An Estimator is a recursive Bayesian estimator over beliefs of type
// B and observations of type O.
type Estimator[B, O any] interface {
	// InitialBelief returns a new prior belief.
	InitialBelief() B

	// Predict advances b one transition step.
	Predict(b B) error

	// Update conditions b on obs.
	Update(b B, obs O) error
}

// Learn starts from e's prior and runs Predict and Update for each
// observation in obs, returning the final belief.
func Learn[B, O any](e Estimator[B, O], obs []O) (B, error) {
	return LearnFrom(e, e.InitialBelief(), obs)
}

// LearnFrom runs Predict and Update on b for each observation in obs
// and returns b. It stops at the first error, returning it with the
// index of the observation that caused it.
func LearnFrom[B, O any](e Estimator[B, O], b B, obs []O) (B, error) {
	for i, o := range obs {
		if err := e.Predict(b); err != nil {
			return b, fmt.Errorf("predict before observation %d: %w", i, err)
		}
		if err := e.Update(b, o); err != nil {
			return b, fmt.Errorf("observation %d: %w", i, err)
		}
	}
	return b, nil
}
