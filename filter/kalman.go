// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-moreinfer/internal/logging"
	"github.com/aclements/go-moreinfer/stats"
)

// DefaultNISWarn is the normalized innovation squared above which a
// residual is logged. It is the 97.5th percentile of χ² with 2 degrees
// of freedom.
const DefaultNISWarn = 7.378

// LinearModel is a linear-Gaussian state-space model
//
//	x[t+1] = A x[t] + B u + w,  w ~ N(0, Q)
//	y[t]   = C x[t] + v,        v ~ N(0, R)
//
// B may be nil if there is no control input.
type LinearModel struct {
	A, B, C *mat.Dense
	Q, R    *mat.SymDense
}

// Validate checks that the model's matrices agree with each other and
// returns the state and observation dimensions.
func (m *LinearModel) Validate() (n, k int, err error) {
	if m.A == nil || m.C == nil || m.Q == nil || m.R == nil {
		return 0, 0, fmt.Errorf("linear model is missing a matrix: %w", stats.ErrDimension)
	}
	n, c := m.A.Dims()
	if n != c {
		return 0, 0, fmt.Errorf("A is %d×%d, not square: %w", n, c, stats.ErrDimension)
	}
	k, c = m.C.Dims()
	if c != n {
		return 0, 0, fmt.Errorf("C has %d columns, state has %d: %w", c, n, stats.ErrDimension)
	}
	if m.Q.SymmetricDim() != n || m.R.SymmetricDim() != k {
		return 0, 0, fmt.Errorf("noise covariances do not match state/observation: %w", stats.ErrDimension)
	}
	if m.B != nil {
		if r, _ := m.B.Dims(); r != n {
			return 0, 0, fmt.Errorf("B has %d rows, state has %d: %w", r, n, stats.ErrDimension)
		}
	}
	return n, k, nil
}

// Innovation describes the most recent measurement update.
type Innovation struct {
	// Residual is y - ŷ, the observation minus its prediction.
	Residual []float64

	// Cov is the innovation covariance S = C P Cᵀ + R.
	Cov *mat.SymDense

	// Gain is the Kalman gain P Cᵀ S⁻¹.
	Gain *mat.Dense

	// NIS is the normalized innovation squared, Residualᵀ S⁻¹
	// Residual. For a consistent filter it is χ² distributed with
	// len(Residual) degrees of freedom.
	NIS float64
}

// Kalman is a Kalman filter over Gaussian beliefs and real vector
// observations. Create one with NewKalman.
type Kalman struct {
	Model   LinearModel
	Initial *stats.Gaussian

	// Control is the control input u. It is only used if Model.B
	// is non-nil.
	Control []float64

	// NISWarn is the normalized innovation squared above which
	// an update is logged as a warning. If 0, DefaultNISWarn is
	// used.
	NISWarn float64

	Logger log.FieldLogger

	n, k int
	last Innovation
}

// NewKalman returns a Kalman filter for model starting from initial.
func NewKalman(model LinearModel, initial *stats.Gaussian, logger log.FieldLogger) (*Kalman, error) {
	n, k, err := model.Validate()
	if err != nil {
		return nil, err
	}
	if initial == nil || initial.Dim() != n {
		return nil, fmt.Errorf("initial belief does not match %d-dimensional state: %w", n, stats.ErrDimension)
	}
	return &Kalman{Model: model, Initial: initial, Logger: logger, n: n, k: k}, nil
}

// InitialBelief returns a copy of the initial belief.
func (kf *Kalman) InitialBelief() *stats.Gaussian {
	return kf.Initial.Clone()
}

// Predict sets b to N(A m + B u, A P Aᵀ + Q).
func (kf *Kalman) Predict(b *stats.Gaussian) error {
	if b.Dim() != kf.n {
		return fmt.Errorf("belief has dimension %d, model %d: %w", b.Dim(), kf.n, stats.ErrDimension)
	}
	m := kf.Model
	var mu mat.VecDense
	mu.MulVec(m.A, b.Mu)
	if m.B != nil {
		if _, c := m.B.Dims(); c != len(kf.Control) {
			return fmt.Errorf("control has length %d, B has %d columns: %w", len(kf.Control), c, stats.ErrDimension)
		}
		var bu mat.VecDense
		bu.MulVec(m.B, mat.NewVecDense(len(kf.Control), kf.Control))
		mu.AddVec(&mu, &bu)
	}
	b.Mu.CopyVec(&mu)
	propagate(b.Sigma, m.A, m.Q)
	return nil
}

// Update conditions b on observation y.
func (kf *Kalman) Update(b *stats.Gaussian, y []float64) error {
	if len(y) != kf.k {
		return fmt.Errorf("observation has length %d, model %d: %w", len(y), kf.k, stats.ErrDimension)
	}
	if b.Dim() != kf.n {
		return fmt.Errorf("belief has dimension %d, model %d: %w", b.Dim(), kf.n, stats.ErrDimension)
	}
	var pred mat.VecDense
	pred.MulVec(kf.Model.C, b.Mu)
	in, err := measure(b, y, pred.RawVector().Data, kf.Model.C, kf.Model.R)
	if err != nil {
		return err
	}
	kf.last = in
	warnResidual(kf.Logger, "kalman", in, kf.NISWarn)
	return nil
}

// Last returns the innovation of the most recent Update.
func (kf *Kalman) Last() Innovation {
	return kf.last
}

// propagate sets sigma to F sigma Fᵀ + Q.
func propagate(sigma *mat.SymDense, F mat.Matrix, Q mat.Symmetric) {
	var fp, fpf mat.Dense
	fp.Mul(F, sigma)
	fpf.Mul(&fp, F.T())
	fpf.Add(&fpf, Q)
	stats.Symmetrize(sigma, &fpf)
}

// measure applies the Kalman measurement update to b given
// observation y, its prediction pred, the observation matrix (or
// Jacobian) C, and the observation noise R.
func measure(b *stats.Gaussian, y, pred []float64, C mat.Matrix, R mat.Symmetric) (Innovation, error) {
	n, k := b.Dim(), len(y)

	resid := make([]float64, k)
	for i := range resid {
		resid[i] = y[i] - pred[i]
	}
	rv := mat.NewVecDense(k, resid)

	// S = C P Cᵀ + R.
	var pct, s mat.Dense
	pct.Mul(b.Sigma, C.T())
	s.Mul(C, &pct)
	s.Add(&s, R)
	S := mat.NewSymDense(k, nil)
	stats.Symmetrize(S, &s)

	var chol mat.Cholesky
	if ok := chol.Factorize(S); !ok {
		return Innovation{}, fmt.Errorf("innovation covariance: %w", stats.ErrNotPositiveDefinite)
	}

	// K = P Cᵀ S⁻¹, solved as S Kᵀ = C P.
	var kt mat.Dense
	if err := chol.SolveTo(&kt, pct.T()); err != nil {
		return Innovation{}, fmt.Errorf("kalman gain: %w", err)
	}
	K := mat.DenseCopyOf(kt.T())

	var dm mat.VecDense
	dm.MulVec(K, rv)
	b.Mu.AddVec(b.Mu, &dm)

	// P = (I - K C) P.
	var ikc, p mat.Dense
	ikc.Mul(K, C)
	ikc.Scale(-1, &ikc)
	for i := 0; i < n; i++ {
		ikc.Set(i, i, 1+ikc.At(i, i))
	}
	p.Mul(&ikc, b.Sigma)
	stats.Symmetrize(b.Sigma, &p)

	var sinv mat.VecDense
	if err := chol.SolveVecTo(&sinv, rv); err != nil {
		return Innovation{}, fmt.Errorf("normalized innovation: %w", err)
	}
	return Innovation{
		Residual: resid,
		Cov:      S,
		Gain:     K,
		NIS:      mat.Dot(rv, &sinv),
	}, nil
}

func warnResidual(l log.FieldLogger, filter string, in Innovation, limit float64) {
	if limit == 0 {
		limit = DefaultNISWarn
	}
	if in.NIS > limit {
		logging.OrDiscard(l).WithFields(log.Fields{
			"filter":   filter,
			"nis":      in.NIS,
			"residual": in.Residual,
		}).Warn("observation is far outside its predicted distribution")
	}
}
