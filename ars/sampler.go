// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ars

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/aclements/go-moreinfer/diag"
	"github.com/aclements/go-moreinfer/stats"
)

// A Sampler draws from a log-concave density by adaptive rejection.
type Sampler struct {
	f   LogDensity
	env *Envelope

	// Observer, if non-nil, sees every proposal as sampler "ars".
	Observer diag.Observer

	// Evaluations counts evaluations of the log density, including
	// those for the initial points.
	Evaluations int
	Proposals   int
	Accepted    int
}

// New returns a sampler for f over [lo, hi], starting from the points
// init. At least two distinct points are needed. If lo is -Inf the
// derivative at the smallest point must be positive, and if hi is +Inf
// the derivative at the largest must be negative.
func New(f LogDensity, lo, hi float64, init []float64) (*Sampler, error) {
	s := &Sampler{f: f}
	pts := make([]Point, len(init))
	for i, x := range init {
		pts[i] = s.eval(x)
	}
	env, err := NewEnvelope(lo, hi, pts)
	if err != nil {
		return nil, err
	}
	s.env = env
	return s, nil
}

func (s *Sampler) eval(x float64) Point {
	s.Evaluations++
	return s.f.Evaluate(x)
}

// Envelope returns the sampler's current envelope.
func (s *Sampler) Envelope() *Envelope {
	return s.env
}

// maxStalls bounds the run of consecutive proposals that neither
// return a draw nor refine the envelope.
const maxStalls = 100

// ErrStalled is returned when the envelope keeps proposing points it
// cannot use, which happens when the log density is not finite over
// much of the upper envelope's mass.
var ErrStalled = errors.New("adaptive rejection sampler stalled")

// Sample returns one draw from the density. Evaluations of log f that
// are NaN or infinite count as rejections and are not added to the
// envelope.
func (s *Sampler) Sample(rng *rand.Rand) (float64, error) {
	obs := diag.OrNop(s.Observer)
	for stalls := 0; stalls < maxStalls; {
		x := s.env.Rand(rng)
		if math.IsInf(x, 0) || math.IsNaN(x) {
			stalls++
			continue
		}
		s.Proposals++
		logU := math.Log(rng.Float64())
		upper := s.env.Upper(x)

		// Squeeze test.
		if logU <= s.env.Lower(x)-upper {
			s.Accepted++
			obs.Proposal("ars", true)
			return x, nil
		}

		p := s.eval(x)
		if !p.finite() {
			stalls++
			obs.Proposal("ars", false)
			continue
		}
		if s.env.Insert(p) {
			stalls = 0
		} else {
			stalls++
		}
		if logU <= p.LogF-upper {
			s.Accepted++
			obs.Proposal("ars", true)
			return x, nil
		}
		obs.Proposal("ars", false)
	}
	return 0, fmt.Errorf("%d proposals without progress: %w", maxStalls, ErrStalled)
}

// SampleN returns n draws as an equally weighted sample.
func (s *Sampler) SampleN(rng *rand.Rand, n int) (*stats.Empirical[float64], error) {
	if n < 0 {
		return nil, fmt.Errorf("sample count %d: %w", n, stats.ErrSampleSize)
	}
	out := &stats.Empirical[float64]{
		Values:  make([]float64, n),
		Weights: make([]float64, n),
	}
	for i := range out.Values {
		x, err := s.Sample(rng)
		if err != nil {
			return nil, err
		}
		out.Values[i] = x
		out.Weights[i] = 1
	}
	return out, nil
}

// SampleFunc draws once from the log density f over [lo, hi] with a
// fresh envelope started at init. It suits densities that change
// between draws, such as a full conditional inside a Gibbs sweep.
func SampleFunc(f LogDensity, lo, hi float64, init []float64, rng *rand.Rand) (float64, error) {
	s, err := New(f, lo, hi, init)
	if err != nil {
		return 0, fmt.Errorf("adaptive rejection sampling: %w", err)
	}
	return s.Sample(rng)
}
