// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dpmm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/aclements/go-moreinfer/stats"
)

// Gaussian is the conjugate prior for multivariate normal components
// with a known, shared covariance. Component means have a normal prior.
type Gaussian struct {
	prior *stats.Gaussian
	sigma *mat.SymDense

	sigmaInv, priorInv *mat.SymDense
	priorInvMu         *mat.VecDense
}

// NewGaussian returns a model whose components are N(μ, sigma) with
// μ ~ prior.
func NewGaussian(prior *stats.Gaussian, sigma mat.Symmetric) (*Gaussian, error) {
	d := prior.Dim()
	if sigma.SymmetricDim() != d {
		return nil, fmt.Errorf("component covariance is %d×%d, prior is over %d: %w", sigma.SymmetricDim(), sigma.SymmetricDim(), d, stats.ErrDimension)
	}
	m := &Gaussian{
		prior:    prior.Clone(),
		sigma:    mat.NewSymDense(d, nil),
		sigmaInv: mat.NewSymDense(d, nil),
		priorInv: mat.NewSymDense(d, nil),
	}
	m.sigma.CopySym(sigma)
	if err := invert(m.sigmaInv, m.sigma); err != nil {
		return nil, fmt.Errorf("component covariance: %w", err)
	}
	if err := invert(m.priorInv, m.prior.Sigma); err != nil {
		return nil, fmt.Errorf("prior covariance: %w", err)
	}
	m.priorInvMu = mat.NewVecDense(d, nil)
	m.priorInvMu.MulVec(m.priorInv, m.prior.Mu)
	return m, nil
}

func invert(dst *mat.SymDense, a mat.Symmetric) error {
	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return stats.ErrNotPositiveDefinite
	}
	return chol.InverseTo(dst)
}

func (m *Gaussian) NewCluster() ClusterPosterior[[]float64] {
	return &gaussianCluster{
		model: m,
		sum:   mat.NewVecDense(m.prior.Dim(), nil),
	}
}

type gaussianCluster struct {
	model *Gaussian
	n     int
	sum   *mat.VecDense

	// pred caches the predictive distribution until the next
	// Add or Remove.
	pred *distmv.Normal
}

func (c *gaussianCluster) Add(x []float64) {
	c.n++
	c.sum.AddVec(c.sum, mat.NewVecDense(len(x), x))
	c.pred = nil
}

func (c *gaussianCluster) Remove(x []float64) {
	c.n--
	if c.n == 0 {
		c.sum.Zero()
	} else {
		c.sum.SubVec(c.sum, mat.NewVecDense(len(x), x))
	}
	c.pred = nil
}

func (c *gaussianCluster) Len() int {
	return c.n
}

func (c *gaussianCluster) Clone() ClusterPosterior[[]float64] {
	return &gaussianCluster{
		model: c.model,
		n:     c.n,
		sum:   mat.VecDenseCopyOf(c.sum),
	}
}

// Posterior returns the posterior over the component mean.
func (c *gaussianCluster) Posterior() *stats.Gaussian {
	m := c.model
	d := m.prior.Dim()

	prec := mat.NewSymDense(d, nil)
	prec.ScaleSym(float64(c.n), m.sigmaInv)
	prec.AddSym(prec, m.priorInv)
	cov := mat.NewSymDense(d, nil)
	if err := invert(cov, prec); err != nil {
		// A sum of positive definite matrices is positive
		// definite.
		panic("dpmm: posterior precision is singular")
	}

	var rhs mat.VecDense
	rhs.MulVec(m.sigmaInv, c.sum)
	rhs.AddVec(&rhs, m.priorInvMu)
	var mu mat.VecDense
	mu.MulVec(cov, &rhs)
	return &stats.Gaussian{Mu: &mu, Sigma: cov}
}

func (c *gaussianCluster) LogPredictive(x []float64) float64 {
	if c.pred == nil {
		post := c.Posterior()
		cov := mat.NewSymDense(post.Dim(), nil)
		cov.AddSym(post.Sigma, c.model.sigma)
		pred, ok := distmv.NewNormal(post.MeanVec(nil), cov, nil)
		if !ok {
			panic("dpmm: predictive covariance is not positive definite")
		}
		c.pred = pred
	}
	return c.pred.LogProb(x)
}
