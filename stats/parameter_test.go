// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestBayesianParameter(t *testing.T) {
	p := BinomialModel("rate", 1, distuv.Beta{Alpha: 1, Beta: 1})
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := (&BayesianParameter{Name: "x"}).Validate(); err == nil {
		t.Fatal("Validate of an empty parameter succeeded")
	}

	data := []float64{1, 1, 0, 1}
	check := func(theta, want float64) {
		t.Helper()
		got := p.LogPosterior(theta, data)
		if !(math.IsInf(want, -1) && math.IsInf(got, -1)) && !aeq(want, got) {
			t.Errorf("LogPosterior(%v) = %v, want %v", theta, got, want)
		}
	}
	// Uniform prior: the posterior is θ³(1-θ).
	check(0.5, math.Log(0.5*0.5*0.5*0.5))
	check(0.75, math.Log(0.75*0.75*0.75*0.25))
	check(-0.1, math.Inf(-1))
	check(1.5, math.Inf(-1))

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		if th := p.SamplePrior(rng); th < 0 || th > 1 {
			t.Fatalf("SamplePrior = %v outside [0, 1]", th)
		}
	}
}
