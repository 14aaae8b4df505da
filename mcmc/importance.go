// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcmc

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/aclements/go-moreinfer/diag"
	"github.com/aclements/go-moreinfer/stats"
)

// Importance approximates a target density by draws from an
// importance distribution, each weighted by target(x)/importance(x).
//
// Every draw is kept; nothing is resampled. The importance
// distribution must have support wherever the target does, or the
// estimate is biased. A poorly matched importance distribution shows
// up as a small EffectiveSampleSize of the result.
type Importance[T any] struct {
	Importance Proposal[T]

	// LogTarget is the log target density. Weights are only as
	// normalized as it is.
	LogTarget stats.Evaluator[T, float64]

	Observer diag.Observer
}

// Sample returns n weighted draws. A draw at which the importance
// density is zero gets weight 0.
func (s *Importance[T]) Sample(rng *rand.Rand, n int) (*stats.Empirical[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("sample count %d: %w", n, stats.ErrSampleSize)
	}
	out := &stats.Empirical[T]{
		Values:  make([]T, n),
		Weights: make([]float64, n),
	}
	for i := range out.Values {
		x := s.Importance.Rand(rng)
		out.Values[i] = x
		lq := s.Importance.LogProb(x)
		if math.IsInf(lq, -1) {
			continue
		}
		out.Weights[i] = math.Exp(s.LogTarget.Evaluate(x) - lq)
	}
	diag.OrNop(s.Observer).EffectiveSampleSize("importance", out.EffectiveSampleSize())
	return out, nil
}
