// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestEmpiricalNormalize(t *testing.T) {
	e, err := NewEmpirical([]string{"a", "b", "c"}, []float64{1, 3, 0})
	require.NoError(t, err)
	require.NoError(t, e.Normalize())
	assert.InDelta(t, 1, e.TotalWeight(), 1e-12)
	assert.InDelta(t, 0.75, e.MaxWeight(), 1e-12)

	zero := &Empirical[int]{Values: []int{1, 2}, Weights: []float64{0, 0}}
	assert.ErrorIs(t, zero.Normalize(), ErrZeroWeight)
	assert.Equal(t, []float64{0, 0}, zero.Weights)

	_, err = NewEmpirical([]int{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrSampleSize)
	_, err = NewEmpirical([]int{1}, []float64{-1})
	assert.ErrorIs(t, err, ErrNonPositive)
}

func TestEmpiricalESS(t *testing.T) {
	u := UniformEmpirical([]int{1, 2, 3, 4})
	assert.InDelta(t, 4, u.EffectiveSampleSize(), 1e-12)

	d := &Empirical[int]{Values: []int{1, 2, 3, 4}, Weights: []float64{1, 0, 0, 0}}
	assert.InDelta(t, 1, d.EffectiveSampleSize(), 1e-12)
}

func TestEmpiricalResample(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := &Empirical[int]{Values: []int{0, 1, 2}, Weights: []float64{0, 1, 3}}
	e.Resample(rng, 10000)

	require.Equal(t, 10000, e.Len())
	assert.InDelta(t, 10000, e.TotalWeight(), 1e-9)
	h := Distinct(e)
	assert.Zero(t, h.Weight(0), "zero-weight value was drawn")
	assert.InDelta(t, 0.75, h.Fraction(2), 0.02)
	mode, ok := h.Mode()
	assert.True(t, ok)
	assert.Equal(t, 2, mode)
}

func TestEmpiricalDeterministic(t *testing.T) {
	draw := func() []int {
		rng := rand.New(rand.NewSource(42))
		e := &Empirical[int]{Values: []int{0, 1, 2, 3}, Weights: []float64{1, 2, 3, 4}}
		e.Resample(rng, 50)
		return e.Values
	}
	assert.Equal(t, draw(), draw())
}

func TestEmpiricalClone(t *testing.T) {
	e := UniformEmpirical([][]float64{{1, 2}, {3, 4}})
	c := e.Clone(func(v []float64) []float64 { return append([]float64(nil), v...) })
	c.Values[0][0] = 100
	c.Weights[1] = 5
	assert.Equal(t, 1.0, e.Values[0][0])
	assert.Equal(t, 1.0, e.Weights[1])
}

func TestEmpiricalProject(t *testing.T) {
	e := &Empirical[[2]float64]{
		Values:  [][2]float64{{0, 0}, {2, 4}},
		Weights: []float64{1, 1},
	}
	b := e.Project(func(v [2]float64) []float64 { return v[:] })
	assert.Equal(t, 2, b.Dim())
	assert.InDeltaSlice(t, []float64{1, 2}, b.MeanVec(nil), 1e-12)

	var cov mat.SymDense
	b.CovarianceMatrix(&cov)
	assert.InDelta(t, 1, cov.At(0, 0), 1e-12)
	assert.InDelta(t, 2, cov.At(0, 1), 1e-12)
	assert.InDelta(t, 4, cov.At(1, 1), 1e-12)

	assert.InDelta(t, 3, e.Mean(func(v [2]float64) float64 { return v[0] + v[1] }), 1e-12)
}

func TestHistogramOrder(t *testing.T) {
	var h Histogram[string]
	h.Add("b", 1)
	h.Add("a", 2)
	h.Add("b", 1)
	assert.Equal(t, []string{"b", "a"}, h.Keys())
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 4.0, h.Total())

	// Equal weights: the first inserted wins.
	mode, _ := h.Mode()
	assert.Equal(t, "b", mode)

	var empty Histogram[int]
	_, ok := empty.Mode()
	assert.False(t, ok)
}

func TestGaussian(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{4, 1, 1, 2})
	_, err := NewGaussian([]float64{1}, sigma)
	assert.ErrorIs(t, err, ErrDimension)

	g, err := NewGaussian([]float64{1, -1}, sigma)
	require.NoError(t, err)

	c := g.Clone()
	c.Mu.SetVec(0, 50)
	c.Sigma.SetSym(0, 0, 50)
	assert.Equal(t, 1.0, g.Mu.AtVec(0))
	assert.Equal(t, 4.0, g.Sigma.At(0, 0))

	rng := rand.New(rand.NewSource(1))
	var s0, s1 Sample
	x := make([]float64, 2)
	for i := 0; i < 20000; i++ {
		g.Rand(x, rng)
		s0.Xs = append(s0.Xs, x[0])
		s1.Xs = append(s1.Xs, x[1])
	}
	assert.InDelta(t, 1, s0.Mean(), 0.05)
	assert.InDelta(t, -1, s1.Mean(), 0.05)
	assert.InDelta(t, 4, s0.Variance(), 0.15)

	lp, err := g.LogProb([]float64{1, -1})
	require.NoError(t, err)
	// -log(2π) - ½log|Σ| with |Σ| = 7.
	assert.InDelta(t, -1.8378770664093453-0.5*1.9459101090932196, lp, 1e-6)

	// One unit along x₀ costs ½(Σ⁻¹)₀₀ = 1/7.
	lp1, err := g.LogProb([]float64{2, -1})
	require.NoError(t, err)
	assert.InDelta(t, -1.0/7, lp1-lp, 1e-12)
}

func TestSymmetrize(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 4, 3})
	dst := mat.NewSymDense(2, nil)
	Symmetrize(dst, a)
	assert.Equal(t, 3.0, dst.At(0, 1))
	assert.Equal(t, 3.0, dst.At(1, 0))
}
