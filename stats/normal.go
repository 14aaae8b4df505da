// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalDist is a normal (Gaussian) distribution with mean Mu and
// standard deviation Sigma.
type NormalDist struct {
	Mu, Sigma float64
}

// StdNormal is the standard normal distribution.
var StdNormal = NormalDist{0, 1}

func (n NormalDist) uv() distuv.Normal {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma}
}

func (n NormalDist) PDF(x float64) float64 {
	return n.uv().Prob(x)
}

func (n NormalDist) PDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	d := n.uv()
	for i, x := range xs {
		res[i] = d.Prob(x)
	}
	return res
}

func (n NormalDist) LogProb(x float64) float64 {
	return n.uv().LogProb(x)
}

func (n NormalDist) CDF(x float64) float64 {
	return n.uv().CDF(x)
}

func (n NormalDist) CDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	d := n.uv()
	for i, x := range xs {
		res[i] = d.CDF(x)
	}
	return res
}

// InvCDF returns the inverse of the CDF for p.
func (n NormalDist) InvCDF(p float64) float64 {
	return n.uv().Quantile(p)
}

// Quantile is InvCDF. It makes NormalDist usable as a Prior.
func (n NormalDist) Quantile(p float64) float64 {
	return n.InvCDF(p)
}

// Rand returns a random sample drawn from n using rng.
func (n NormalDist) Rand(rng *rand.Rand) float64 {
	return n.Mu + n.Sigma*rng.NormFloat64()
}

func (n NormalDist) Bounds() (float64, float64) {
	const stddevs = 3
	return n.Mu - stddevs*n.Sigma, n.Mu + stddevs*n.Sigma
}

// DeltaDist is the Dirac delta function, centered at C.
type DeltaDist struct {
	C float64
}

func (d DeltaDist) PDF(x float64) float64 {
	if x == d.C {
		return inf
	}
	return 0
}

func (d DeltaDist) PDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		if x == d.C {
			res[i] = inf
		}
	}
	return res
}

func (d DeltaDist) CDF(x float64) float64 {
	if x >= d.C {
		return 1
	}
	return 0
}

func (d DeltaDist) CDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = d.CDF(x)
	}
	return res
}

func (d DeltaDist) Bounds() (float64, float64) {
	return d.C - 1, d.C + 1
}
