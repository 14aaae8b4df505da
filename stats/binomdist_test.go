// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestBinomialDist(t *testing.T) {
	dist := BinomialDist{N: 5, P: 0.2}
	testFunc(t, fmt.Sprintf("%+v.PMF", dist), dist.PMF,
		map[float64]float64{
			-1000: 0,
			-1:    0,
			0:     0.32768,
			1:     0.4096,
			2:     0.2048,
			3:     0.0512,
			4:     0.0064,
			5:     math.Pow(dist.P, 5),
			6:     0,
			1000:  0,
		})
	testFunc(t, fmt.Sprintf("%+v.CDF", dist), dist.CDF,
		map[float64]float64{
			-1: 0,
			0:  0.32768,
			1:  0.32768 + 0.4096,
			2:  0.32768 + 0.4096 + 0.2048,
			5:  1,
			9:  1,
		})

	dist = BinomialDist{N: 30, P: 0.5}
	norm := dist.NormalApprox()
	for k := 10; k <= 20; k++ {
		b := dist.PMF(float64(k))
		n := norm.CDF(float64(k)+0.5) - norm.CDF(float64(k)-0.5)

		// The normal approximation isn't actually very close,
		// even with high N and P near 0.5, so we only check
		// the center of the distribution and we're pretty
		// lax.
		err := math.Abs(b/n - 1)
		if err > 0.01 {
			t.Errorf("want %v ≅ %v at %d", b, n, k)
		}
	}
}

func TestBinomialDegenerate(t *testing.T) {
	if got := (BinomialDist{N: 3, P: 0}).PMF(0); got != 1 {
		t.Errorf("P=0 PMF(0) = %v, want 1", got)
	}
	if got := (BinomialDist{N: 3, P: 1}).PMF(3); got != 1 {
		t.Errorf("P=1 PMF(3) = %v, want 1", got)
	}
	if err := (BinomialDist{N: 3, P: 1.5}).Validate(); err != ErrInvalidProbability {
		t.Errorf("Validate() = %v, want ErrInvalidProbability", err)
	}
}

func TestBinomialRand(t *testing.T) {
	dist := BinomialDist{N: 10, P: 0.3}
	rng := rand.New(rand.NewSource(1))
	var s Sample
	for i := 0; i < 20000; i++ {
		s.Xs = append(s.Xs, dist.Rand(rng))
	}
	if m := s.Mean(); math.Abs(m-dist.Mean()) > 0.05 {
		t.Errorf("sample mean %v, want ≅ %v", m, dist.Mean())
	}
}
