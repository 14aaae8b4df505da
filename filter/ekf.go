// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-moreinfer/stats"
)

// NonlinearModel is a state-space model
//
//	x[t+1] = f(x[t]) + w,  w ~ N(0, Q)
//	y[t]   = h(x[t]) + v,  v ~ N(0, R)
//
// with f = Transition and h = Observation.
type NonlinearModel struct {
	Transition  stats.Evaluator[[]float64, []float64]
	Observation stats.Evaluator[[]float64, []float64]
	Q, R        *mat.SymDense
}

// A Jacobian is an evaluator that can compute its own Jacobian. If a
// NonlinearModel function implements Jacobian, Extended uses it
// instead of finite differences.
type Jacobian interface {
	// Jacobian stores ∂f_i/∂x_j at x in dst, which is already
	// sized len(f(x))×len(x).
	Jacobian(dst *mat.Dense, x []float64)
}

// Extended is an extended Kalman filter. At each step it linearizes
// the model around the current mean and applies the Kalman equations
// to the linearization.
//
// The resulting covariance is only an approximation. It can be badly
// inconsistent when the model is strongly nonlinear over the spread of
// the belief, or when the true posterior is multimodal.
type Extended struct {
	Model   NonlinearModel
	Initial *stats.Gaussian

	// NISWarn is as for Kalman.
	NISWarn float64

	Logger log.FieldLogger

	// Step is the finite difference step. If 0, the default step
	// of the central difference formula is used.
	Step float64

	last Innovation
}

// NewExtended returns an extended Kalman filter for model starting
// from initial.
func NewExtended(model NonlinearModel, initial *stats.Gaussian, logger log.FieldLogger) (*Extended, error) {
	if model.Transition == nil || model.Observation == nil || model.Q == nil || model.R == nil {
		return nil, fmt.Errorf("nonlinear model is incomplete: %w", stats.ErrDimension)
	}
	if initial == nil || initial.Dim() != model.Q.SymmetricDim() {
		return nil, fmt.Errorf("initial belief does not match process noise: %w", stats.ErrDimension)
	}
	return &Extended{Model: model, Initial: initial, Logger: logger}, nil
}

func (ef *Extended) InitialBelief() *stats.Gaussian {
	return ef.Initial.Clone()
}

// Predict sets b to N(f(m), F P Fᵀ + Q), where F is the Jacobian of f
// at m.
func (ef *Extended) Predict(b *stats.Gaussian) error {
	n := b.Dim()
	if n != ef.Model.Q.SymmetricDim() {
		return fmt.Errorf("belief has dimension %d, process noise %d: %w", n, ef.Model.Q.SymmetricDim(), stats.ErrDimension)
	}
	m := b.MeanVec(nil)
	fm := ef.Model.Transition.Evaluate(m)
	if len(fm) != n {
		return fmt.Errorf("transition maps %d to %d dimensions: %w", n, len(fm), stats.ErrDimension)
	}
	F := ef.jacobian(ef.Model.Transition, m, n)
	b.Mu.CopyVec(mat.NewVecDense(n, fm))
	propagate(b.Sigma, F, ef.Model.Q)
	return nil
}

// Update conditions b on y using the Jacobian of h at the predicted
// mean.
func (ef *Extended) Update(b *stats.Gaussian, y []float64) error {
	if n := b.Dim(); n != ef.Model.Q.SymmetricDim() {
		return fmt.Errorf("belief has dimension %d, process noise %d: %w", n, ef.Model.Q.SymmetricDim(), stats.ErrDimension)
	}
	k := ef.Model.R.SymmetricDim()
	if len(y) != k {
		return fmt.Errorf("observation has length %d, noise %d: %w", len(y), k, stats.ErrDimension)
	}
	m := b.MeanVec(nil)
	pred := ef.Model.Observation.Evaluate(m)
	if len(pred) != k {
		return fmt.Errorf("observation function returns %d values, want %d: %w", len(pred), k, stats.ErrDimension)
	}
	H := ef.jacobian(ef.Model.Observation, m, k)
	in, err := measure(b, y, pred, H, ef.Model.R)
	if err != nil {
		return err
	}
	ef.last = in
	warnResidual(ef.Logger, "extended", in, ef.NISWarn)
	return nil
}

// Last returns the innovation of the most recent Update.
func (ef *Extended) Last() Innovation {
	return ef.last
}

func (ef *Extended) jacobian(f stats.Evaluator[[]float64, []float64], x []float64, rows int) *mat.Dense {
	dst := mat.NewDense(rows, len(x), nil)
	if j, ok := f.(Jacobian); ok {
		j.Jacobian(dst, x)
		return dst
	}
	fd.Jacobian(dst, func(y, x []float64) {
		copy(y, f.Evaluate(x))
	}, x, &fd.JacobianSettings{
		Formula: fd.Central,
		Step:    ef.Step,
	})
	return dst
}
