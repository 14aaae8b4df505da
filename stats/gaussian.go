// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Gaussian is a multivariate normal belief with mean Mu and
// covariance Sigma. It is the belief the Kalman filters maintain.
type Gaussian struct {
	Mu    *mat.VecDense
	Sigma *mat.SymDense
}

// NewGaussian returns a Gaussian with the given mean and covariance.
// The arguments are copied.
func NewGaussian(mu []float64, sigma *mat.SymDense) (*Gaussian, error) {
	if len(mu) == 0 || sigma == nil || sigma.SymmetricDim() != len(mu) {
		return nil, ErrDimension
	}
	g := &Gaussian{
		Mu:    mat.NewVecDense(len(mu), append([]float64(nil), mu...)),
		Sigma: mat.NewSymDense(len(mu), nil),
	}
	g.Sigma.CopySym(sigma)
	return g, nil
}

func (g *Gaussian) Dim() int {
	return g.Mu.Len()
}

func (g *Gaussian) MeanVec(dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, g.Dim())
	}
	copy(dst, g.Mu.RawVector().Data)
	return dst
}

func (g *Gaussian) CovarianceMatrix(dst *mat.SymDense) {
	if dst.IsEmpty() {
		dst.ReuseAsSym(g.Dim())
	}
	dst.CopySym(g.Sigma)
}

// Rand draws from g using rng. A singular Sigma is allowed; the draw
// then lies in the subspace Sigma spans.
func (g *Gaussian) Rand(dst []float64, rng *rand.Rand) []float64 {
	return distmv.NormalRandCov(dst, g.Mu.RawVector().Data, g.Sigma, rng)
}

// LogProb returns the log density of g at x.
func (g *Gaussian) LogProb(x []float64) (float64, error) {
	n, ok := distmv.NewNormal(g.Mu.RawVector().Data, g.Sigma, nil)
	if !ok {
		return 0, ErrNotPositiveDefinite
	}
	return n.LogProb(x), nil
}

// Clone returns a deep copy of g.
func (g *Gaussian) Clone() *Gaussian {
	c, _ := NewGaussian(g.Mu.RawVector().Data, g.Sigma)
	return c
}

// Symmetrize stores (a + aᵀ)/2 in dst, which must already have a's
// dimension. Covariance updates computed as general products drift
// from symmetry by rounding; this removes the drift.
func Symmetrize(dst *mat.SymDense, a mat.Matrix) {
	r, _ := a.Dims()
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			dst.SetSym(i, j, (a.At(i, j)+a.At(j, i))/2)
		}
	}
}
