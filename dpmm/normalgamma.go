// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dpmm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-moreinfer/stats"
)

// NormalGamma is the conjugate prior for univariate normal components
// with unknown mean and precision. The precision is Gamma(Alpha, Beta)
// and, given precision λ, the mean is normal with mean Mu and
// precision Kappa·λ.
type NormalGamma struct {
	Mu, Kappa, Alpha, Beta float64
}

// Validate checks that the hyperparameters are positive.
func (m NormalGamma) Validate() error {
	if !(m.Kappa > 0 && m.Alpha > 0 && m.Beta > 0) {
		return fmt.Errorf("normal-gamma prior %+v: %w", m, stats.ErrNonPositive)
	}
	return nil
}

func (m NormalGamma) NewCluster() ClusterPosterior[float64] {
	return &normalGammaCluster{prior: m}
}

type normalGammaCluster struct {
	prior NormalGamma

	n          int
	sum, sumSq float64
}

func (c *normalGammaCluster) Add(x float64) {
	c.n++
	c.sum += x
	c.sumSq += x * x
}

func (c *normalGammaCluster) Remove(x float64) {
	c.n--
	if c.n == 0 {
		c.sum, c.sumSq = 0, 0
		return
	}
	c.sum -= x
	c.sumSq -= x * x
}

func (c *normalGammaCluster) Len() int {
	return c.n
}

func (c *normalGammaCluster) Clone() ClusterPosterior[float64] {
	nc := *c
	return &nc
}

// Posterior returns the updated hyperparameters.
func (c *normalGammaCluster) Posterior() NormalGamma {
	p := c.prior
	if c.n == 0 {
		return p
	}
	n := float64(c.n)
	mean := c.sum / n
	scatter := math.Max(0, c.sumSq-c.sum*mean)
	kappa := p.Kappa + n
	return NormalGamma{
		Mu:    (p.Kappa*p.Mu + c.sum) / kappa,
		Kappa: kappa,
		Alpha: p.Alpha + n/2,
		Beta:  p.Beta + scatter/2 + p.Kappa*n*(mean-p.Mu)*(mean-p.Mu)/(2*kappa),
	}
}

func (c *normalGammaCluster) LogPredictive(x float64) float64 {
	return c.Posterior().Predictive().LogProb(x)
}

// Predictive returns the Student's t posterior predictive distribution
// of m.
func (m NormalGamma) Predictive() distuv.StudentsT {
	return distuv.StudentsT{
		Mu:    m.Mu,
		Sigma: math.Sqrt(m.Beta * (m.Kappa + 1) / (m.Alpha * m.Kappa)),
		Nu:    2 * m.Alpha,
	}
}
