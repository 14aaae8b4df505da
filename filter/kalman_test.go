// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-moreinfer/stats"
)

// constantVelocity is a 2-state position/velocity model observed
// through position.
func constantVelocity() LinearModel {
	return LinearModel{
		A: mat.NewDense(2, 2, []float64{1, 1, 0, 1}),
		C: mat.NewDense(1, 2, []float64{1, 0}),
		Q: mat.NewSymDense(2, []float64{0.01, 0, 0, 0.01}),
		R: mat.NewSymDense(1, []float64{0.25}),
	}
}

func prior2(t *testing.T) *stats.Gaussian {
	g, err := stats.NewGaussian([]float64{0, 0}, mat.NewSymDense(2, []float64{10, 0, 0, 10}))
	require.NoError(t, err)
	return g
}

func trajectory(n int, seed uint64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	pos, vel := 0.0, 0.5
	var ys [][]float64
	for i := 0; i < n; i++ {
		pos += vel
		ys = append(ys, []float64{pos + 0.5*rng.NormFloat64()})
	}
	return ys
}

func TestKalmanLearnMatchesManual(t *testing.T) {
	ys := trajectory(100, 1)
	kf, err := NewKalman(constantVelocity(), prior2(t), nil)
	require.NoError(t, err)

	batch, err := Learn[*stats.Gaussian, []float64](kf, ys)
	require.NoError(t, err)

	manual := kf.InitialBelief()
	for _, y := range ys {
		require.NoError(t, kf.Predict(manual))
		require.NoError(t, kf.Update(manual, y))
	}
	assert.InDeltaSlice(t, manual.MeanVec(nil), batch.MeanVec(nil), 1e-5)

	// InitialBelief is a copy; learning did not touch the prior.
	assert.Equal(t, 0.0, kf.Initial.Mu.AtVec(0))
}

func TestKalmanCovarianceStaysSymmetric(t *testing.T) {
	kf, err := NewKalman(constantVelocity(), prior2(t), nil)
	require.NoError(t, err)
	b, err := Learn[*stats.Gaussian, []float64](kf, trajectory(200, 2))
	require.NoError(t, err)

	var chol mat.Cholesky
	assert.True(t, chol.Factorize(b.Sigma), "posterior covariance is not positive definite")
	in := kf.Last()
	assert.Len(t, in.Residual, 1)
	r, c := in.Gain.Dims()
	assert.Equal(t, []int{2, 1}, []int{r, c})
}

func TestKalmanConvergesToBatchPosterior(t *testing.T) {
	// Identity transition with no process noise: the filter is
	// estimating a fixed mean, and its answer must match the
	// conjugate posterior computed in one step.
	const n, sd = 1000, 0.5
	truth := []float64{3, -2}
	model := LinearModel{
		A: mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		C: mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		Q: mat.NewSymDense(2, nil),
		R: mat.NewSymDense(2, []float64{sd * sd, 0, 0, sd * sd}),
	}
	const priorVar = 100.0
	initial, err := stats.NewGaussian([]float64{0, 0}, mat.NewSymDense(2, []float64{priorVar, 0, 0, priorVar}))
	require.NoError(t, err)
	kf, err := NewKalman(model, initial, nil)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1000))
	ys := make([][]float64, n)
	sum := make([]float64, 2)
	for i := range ys {
		ys[i] = []float64{truth[0] + sd*rng.NormFloat64(), truth[1] + sd*rng.NormFloat64()}
		sum[0] += ys[i][0]
		sum[1] += ys[i][1]
	}

	b, err := Learn[*stats.Gaussian, []float64](kf, ys)
	require.NoError(t, err)
	for j := range truth {
		assert.InDelta(t, truth[j], b.Mu.AtVec(j), 0.1)

		// Posterior precision is 1/priorVar + n/sd², posterior
		// mean is (Σy/sd²)/precision.
		prec := 1/priorVar + n/(sd*sd)
		assert.InDelta(t, sum[j]/(sd*sd)/prec, b.Mu.AtVec(j), 1e-6)
		assert.InDelta(t, 1/prec, b.Sigma.At(j, j), 1e-9)
	}
}

func TestKalmanDimensionErrors(t *testing.T) {
	kf, err := NewKalman(constantVelocity(), prior2(t), nil)
	require.NoError(t, err)
	b := kf.InitialBelief()
	assert.ErrorIs(t, kf.Update(b, []float64{1, 2}), stats.ErrDimension)

	_, err = Learn[*stats.Gaussian, []float64](kf, [][]float64{{1}, {1, 2}})
	assert.ErrorIs(t, err, stats.ErrDimension)
	assert.Contains(t, err.Error(), "observation 1")

	bad := constantVelocity()
	bad.C = mat.NewDense(1, 3, nil)
	_, err = NewKalman(bad, prior2(t), nil)
	assert.ErrorIs(t, err, stats.ErrDimension)

	one, _ := stats.NewGaussian([]float64{0}, mat.NewSymDense(1, []float64{1}))
	_, err = NewKalman(constantVelocity(), one, nil)
	assert.ErrorIs(t, err, stats.ErrDimension)
}

func TestKalmanControl(t *testing.T) {
	model := constantVelocity()
	model.B = mat.NewDense(2, 1, []float64{0, 1})
	kf, err := NewKalman(model, prior2(t), nil)
	require.NoError(t, err)
	kf.Control = []float64{2}

	b := kf.InitialBelief()
	require.NoError(t, kf.Predict(b))
	assert.Equal(t, []float64{0, 2}, b.MeanVec(nil))

	kf.Control = nil
	assert.ErrorIs(t, kf.Predict(b), stats.ErrDimension)
}

func TestKalmanNotPositiveDefinite(t *testing.T) {
	model := constantVelocity()
	model.R = mat.NewSymDense(1, []float64{-100})
	kf, err := NewKalman(model, prior2(t), nil)
	require.NoError(t, err)
	b := kf.InitialBelief()
	assert.ErrorIs(t, kf.Update(b, []float64{0}), stats.ErrNotPositiveDefinite)
}

func TestKalmanWarnsOnOutlier(t *testing.T) {
	logger, hook := test.NewNullLogger()
	kf, err := NewKalman(constantVelocity(), prior2(t), logger)
	require.NoError(t, err)

	b, err := Learn[*stats.Gaussian, []float64](kf, trajectory(50, 3))
	require.NoError(t, err)
	hook.Reset()

	// An observation 100 units from its prediction.
	require.NoError(t, kf.Predict(b))
	y := b.Mu.AtVec(0) + 100
	require.NoError(t, kf.Update(b, []float64{y}))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Greater(t, kf.Last().NIS, DefaultNISWarn)
}
