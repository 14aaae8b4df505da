// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mathext"
)

// BinomialDist is a binomial distribution.
//
// With N fixed, a BinomialDist indexed by P is the conditional model
// of a BayesianParameter over a success probability: see
// BinomialModel.
type BinomialDist struct {
	// N is the number of independent Bernoulli trials. N >= 0.
	//
	// If N=1, this is equivalent to the Bernoulli distribution.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

// Validate reports whether d has a usable N and P.
func (d BinomialDist) Validate() error {
	if d.N < 0 {
		return ErrNonPositive
	}
	if !(d.P >= 0 && d.P <= 1) {
		return ErrInvalidProbability
	}
	return nil
}

// PMF is the probability of getting exactly int(k) successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) PMF(k float64) float64 {
	ki := int(math.Floor(k))
	if ki < 0 || ki > d.N {
		return 0
	}
	return choose(d.N, ki) * math.Pow(d.P, float64(ki)) * math.Pow(1-d.P, float64(d.N-ki))
}

// LogProb is the log of PMF(k). It lets a BinomialDist serve as a
// likelihood wherever a distuv.LogProber is expected.
func (d BinomialDist) LogProb(k float64) float64 {
	ki := int(math.Floor(k))
	if ki < 0 || ki > d.N {
		return math.Inf(-1)
	}
	// 0^0 = 1 for the degenerate probabilities.
	lp := lchoose(d.N, ki)
	if ki > 0 {
		lp += float64(ki) * math.Log(d.P)
	}
	if d.N-ki > 0 {
		lp += float64(d.N-ki) * math.Log1p(-d.P)
	}
	return lp
}

// CDF is the probability of getting k or fewer successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) CDF(k float64) float64 {
	k = math.Floor(k)
	ki := int(k)
	if ki < 0 {
		return 0
	} else if ki >= d.N {
		return 1
	}
	if d.P == 0 {
		return 1
	} else if d.P == 1 {
		return 0
	}
	return mathext.RegIncBeta(float64(d.N-ki), k+1, 1-d.P)
}

// Rand returns the number of successes in d.N trials drawn with rng.
func (d BinomialDist) Rand(rng *rand.Rand) float64 {
	k := 0
	for i := 0; i < d.N; i++ {
		if rng.Float64() < d.P {
			k++
		}
	}
	return float64(k)
}

func (d BinomialDist) Bounds() (float64, float64) {
	return 0, float64(d.N)
}

func (d BinomialDist) Mean() float64 {
	return float64(d.N) * d.P
}

func (d BinomialDist) Variance() float64 {
	return float64(d.N) * d.P * (1 - d.P)
}

// NormalApprox returns a normal distribution approximation of
// binomial distribution d.
//
// Because the binomial distribution is discrete and the normal
// distribution is continuous, the caller must apply a continuity
// correction when using this approximation:
//
//	b.PMF(k) => n.CDF(k+0.5) - n.CDF(k-0.5)
//	b.CDF(k) => n.CDF(k+0.5)
func (d BinomialDist) NormalApprox() NormalDist {
	return NormalDist{Mu: d.Mean(), Sigma: math.Sqrt(d.Variance())}
}

// choose returns n choose k, rounded to the nearest integer while
// that is still exact.
func choose(n, k int) float64 {
	c := math.Exp(lchoose(n, k))
	if c < 1<<53 {
		c = math.Round(c)
	}
	return c
}

// lchoose returns log(n choose k).
func lchoose(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}
