// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcmc

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/aclements/go-moreinfer/diag"
	"github.com/aclements/go-moreinfer/stats"
)

// ErrTooManyProposals is returned when a rejection sampler exhausts
// its proposal budget before collecting the requested samples.
var ErrTooManyProposals = errors.New("too many proposals")

// A Proposal is a distribution that can be sampled and scored.
type Proposal[T any] interface {
	Rand(rng *rand.Rand) T
	LogProb(x T) float64
}

// FromPrior adapts a univariate distribution with a quantile function
// (any stats.Prior, including the gonum distuv distributions) to a
// Proposal sampled by inversion.
func FromPrior(p stats.Prior) Proposal[float64] {
	return priorProposal{p}
}

type priorProposal struct {
	stats.Prior
}

func (p priorProposal) Rand(rng *rand.Rand) float64 {
	return stats.SamplePrior(p.Prior, rng)
}

// Rejection draws exact samples from a target density by accepting a
// proposal x with probability target(x) / (M proposal(x)).
//
// M must bound target/proposal everywhere. If it does not, the
// samples come from a distorted target; Violations counts the
// proposals at which the bound failed.
type Rejection[T any] struct {
	Proposal Proposal[T]

	// LogTarget returns the log of the target density, which need
	// not be normalized.
	LogTarget stats.Evaluator[T, float64]

	// LogM is log M.
	LogM float64

	// MaxProposals bounds the total proposals of one Sample call.
	// If 0, it is 1000 times the number of requested samples.
	MaxProposals int

	Observer diag.Observer
}

// RejectionStats summarizes one Sample call.
type RejectionStats struct {
	Proposals  int
	Accepted   int
	Violations int
}

// Sample returns n independent draws from the target, each with
// weight 1. If the proposal budget runs out it returns the draws so
// far with ErrTooManyProposals.
func (r *Rejection[T]) Sample(rng *rand.Rand, n int) (*stats.Empirical[T], RejectionStats, error) {
	if n < 0 {
		return nil, RejectionStats{}, fmt.Errorf("sample count %d: %w", n, stats.ErrSampleSize)
	}
	obs := diag.OrNop(r.Observer)
	budget := r.MaxProposals
	if budget == 0 {
		budget = 1000 * n
	}
	var st RejectionStats
	out := &stats.Empirical[T]{}
	for st.Accepted < n {
		if st.Proposals >= budget {
			return out, st, fmt.Errorf("%d accepted of %d after %d proposals: %w", st.Accepted, n, st.Proposals, ErrTooManyProposals)
		}
		st.Proposals++
		x := r.Proposal.Rand(rng)
		logAccept := r.LogTarget.Evaluate(x) - r.LogM - r.Proposal.LogProb(x)
		if logAccept > 0 {
			st.Violations++
		}
		accept := math.Log(rng.Float64()) < logAccept
		obs.Proposal("rejection", accept)
		if accept {
			st.Accepted++
			out.Add(x, 1)
		}
	}
	return out, st, nil
}
