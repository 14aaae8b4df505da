// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// QuantileCIResult bounds the Monte Carlo error of a quantile
// estimated from n independent draws.
//
// A posterior quantile read off a finite sample of draws is itself
// uncertain. The bounds here are order statistics of the draws that
// contain the true posterior quantile with probability Confidence,
// whatever the posterior's shape.
type QuantileCIResult struct {
	Quantile float64
	N        int

	// Confidence is the achieved coverage, which is at least the
	// requested confidence.
	Confidence float64

	// LoOrder and HiOrder are 1-based order statistics. An order
	// of 0 or N+1 means the bound is -inf or +inf.
	LoOrder, HiOrder int

	// Ambiguous is set when LoOrder+1 to HiOrder+1 would give the
	// same coverage.
	Ambiguous bool
}

// FromSample returns the interval in terms of the values in s, which
// must be unweighted and hold exactly q.N values.
func (q QuantileCIResult) FromSample(s Sample) (lo, hi float64) {
	if s.Weights != nil {
		panic("quantile CI of a weighted sample")
	}
	if len(s.Xs) != q.N {
		panic(ErrSampleSize)
	}
	if !s.Sorted {
		s = *s.Copy().Sort()
	}
	lo, hi = math.Inf(-1), math.Inf(1)
	if q.LoOrder >= 1 {
		lo = s.Xs[q.LoOrder-1]
	}
	if q.HiOrder-1 < len(s.Xs) {
		hi = s.Xs[q.HiOrder-1]
	}
	return
}

// quantileCIApproxThreshold is the n above which the normal
// approximation to the binomial is used. Tests lower it.
var quantileCIApproxThreshold = 30

// QuantileCI returns order-statistic bounds on the q'th quantile of
// the distribution a sample of size n was drawn from.
//
// The number of draws falling below the true quantile is
// Binomial(n, q), so the bounds are the narrowest band of that
// binomial holding the requested mass. Ties go left.
func QuantileCI(n int, q, confidence float64) QuantileCIResult {
	res := QuantileCIResult{Quantile: q, N: n}
	if confidence >= 1 {
		res.Confidence, res.LoOrder, res.HiOrder = 1, 0, n+1
		return res
	}

	b := BinomialDist{N: n, P: q}
	var l, r int
	if n <= quantileCIApproxThreshold {
		l, r = quantileCIExact(b, confidence, &res)
	} else {
		l, r = quantileCINormal(b, confidence, &res)
	}
	res.LoOrder, res.HiOrder = max(l, 0), min(r, n+1)
	return res
}

// quantileCIExact grows the band [l, r) outward from the lower mode,
// always taking the heavier neighbor, until it holds confidence.
func quantileCIExact(b BinomialDist, confidence float64, res *QuantileCIResult) (l, r int) {
	mode := int(math.Ceil(float64(b.N+1)*b.P) - 1)
	if b.P == 0 {
		mode = 0
	}
	mass := b.PMF(float64(mode))
	l, r = mode, mode+1
	lp, rp := b.PMF(float64(l-1)), b.PMF(float64(r))
	res.Ambiguous = rp == mass

	for mass < confidence && (lp > 0 || rp > 0) {
		res.Ambiguous = lp == rp
		if lp >= rp {
			mass += lp
			l--
			lp = b.PMF(float64(l - 1))
		} else {
			mass += rp
			r++
			rp = b.PMF(float64(r))
		}
	}
	res.Confidence = mass
	return l, r
}

// quantileCINormal finds the band with the continuity-corrected
// normal approximation and then tries to shave one band off the
// right.
func quantileCINormal(b BinomialDist, confidence float64, res *QuantileCIResult) (l, r int) {
	norm := b.NormalApprox()
	l1 := norm.InvCDF((1 - confidence) / 2)
	r1 := 2*norm.Mu - l1

	// Binomial point k covers [k-0.5, k+0.5] of the normal, so
	// round [l1, r1] out to half-integers and recover k.
	l = int(math.Floor(math.Floor(l1-0.5)+0.5)) + 1
	r = int(math.Floor(math.Ceil(r1-0.5)+0.5)) + 1

	mass := func(l, r int) float64 {
		return norm.CDF(float64(r)-0.5) - norm.CDF(float64(l)-0.5)
	}
	res.Confidence = mass(l, r)
	if m := mass(l, r-1); m >= confidence && m < res.Confidence {
		res.Confidence, res.Ambiguous = m, true
		r--
	}
	if l <= 0 && r >= b.N+1 {
		// The normal tails never quite reach 1.
		res.Confidence, res.Ambiguous = 1, false
	}
	return l, r
}
