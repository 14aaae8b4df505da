// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func TestSampleQuantile(t *testing.T) {
	s := Sample{Xs: []float64{15, 20, 35, 40, 50}}
	testFunc(t, "Quantile", s.Quantile, map[float64]float64{
		-1:  15,
		0:   15,
		.05: 15,
		.30: 20,
		.50: 35,
		.95: 50,
		1:   50,
		2:   50,
	})
}

func TestSampleWeighted(t *testing.T) {
	s := Sample{Xs: []float64{1, 2, 3}, Weights: []float64{0, 1, 3}}
	if got, want := s.Mean(), 2.75; !aeq(want, got) {
		t.Errorf("Mean() = %v, want %v", got, want)
	}
	if got, want := s.Variance(), 0.1875; !aeq(want, got) {
		t.Errorf("Variance() = %v, want %v", got, want)
	}
	if lo, hi := s.Bounds(); lo != 2 || hi != 3 {
		t.Errorf("Bounds() = %v, %v, want 2, 3", lo, hi)
	}
	if got := s.Quantile(0.5); got != 3 {
		t.Errorf("Quantile(0.5) = %v, want 3", got)
	}

	var empty Sample
	if !math.IsNaN(empty.Mean()) {
		t.Errorf("empty Mean() = %v, want NaN", empty.Mean())
	}
}

func TestSampleSortKeepsWeights(t *testing.T) {
	s := Sample{Xs: []float64{3, 1, 2}, Weights: []float64{30, 10, 20}}
	c := s.Copy().Sort()
	for i, x := range c.Xs {
		if c.Weights[i] != 10*x {
			t.Errorf("weight of %v is %v after sorting, want %v", x, c.Weights[i], 10*x)
		}
	}
	if s.Xs[0] != 3 {
		t.Errorf("Sort of a copy modified the original")
	}
}

func TestCredibleInterval(t *testing.T) {
	var s Sample
	for i := 1; i <= 1000; i++ {
		s.Xs = append(s.Xs, float64(i))
	}
	lo, hi := s.CredibleInterval(0.9)
	if lo < 50 || lo > 51 || hi < 950 || hi > 951 {
		t.Errorf("CredibleInterval(0.9) = [%v,%v], want about [50,950]", lo, hi)
	}

	defer func() {
		if recover() != ErrInvalidProbability {
			t.Errorf("CredibleInterval(2) did not panic with ErrInvalidProbability")
		}
	}()
	s.CredibleInterval(2)
}

func TestKDE(t *testing.T) {
	s := Sample{Xs: []float64{-1, 0, 0, 1}}
	d := KDE{Bandwidth: 0.5}.From(s)
	if got := d.CDF(0); !aeq(0.5, got) {
		t.Errorf("CDF(0) = %v, want 0.5", got)
	}
	lo, hi := d.Bounds()
	if !(lo < -1 && hi > 1) {
		t.Errorf("Bounds() = %v, %v, want to cover [-1, 1]", lo, hi)
	}

	// With a boundary at 0 all mass stays on [0, inf).
	pos := Sample{Xs: []float64{0.1, 0.2, 0.5}}
	d = KDE{Bandwidth: 0.3, BoundaryMin: 0, BoundaryMax: math.Inf(1)}.From(pos)
	if got := d.CDF(0); got != 0 {
		t.Errorf("reflected CDF(0) = %v, want 0", got)
	}
	if got := d.CDF(100); !aeq(1, got) {
		t.Errorf("reflected CDF(100) = %v, want 1", got)
	}
	if got := d.PDF(-0.1); got != 0 {
		t.Errorf("reflected PDF(-0.1) = %v, want 0", got)
	}
}
