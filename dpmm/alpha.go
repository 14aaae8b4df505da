// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dpmm

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mathext"

	"github.com/aclements/go-moreinfer/ars"
	"github.com/aclements/go-moreinfer/stats"
)

// AlphaPrior is a Gamma(Shape, Rate) prior on the concentration
// parameter.
type AlphaPrior struct {
	Shape, Rate float64
}

func (p AlphaPrior) validate() error {
	if !(p.Shape > 0 && p.Rate > 0) {
		return fmt.Errorf("concentration prior %+v: %w", p, stats.ErrNonPositive)
	}
	return nil
}

// logPosterior returns the log posterior density of η = log α given k
// clusters among n observations, and its derivative in η. It is
// concave in η.
//
// The Gamma ratio Γ(α)/Γ(α+n) is evaluated as Γ(α+1)/(α Γ(α+n)), which
// stays finite as α underflows to 0. Where α overflows the density is
// taken to be 0.
func (p AlphaPrior) logPosterior(k, n int) ars.Func {
	a := p.Shape + float64(k)
	fn := float64(n)
	return func(eta float64) (float64, float64) {
		alpha := math.Exp(eta)
		if math.IsInf(alpha, 1) {
			return math.Inf(-1), math.Inf(-1)
		}
		lg1, _ := math.Lgamma(alpha + 1)
		lgn, _ := math.Lgamma(alpha + fn)
		logf := (a-1)*eta - p.Rate*alpha + lg1 - lgn
		deriv := a - 1 - p.Rate*alpha + alpha*(mathext.Digamma(alpha+1)-mathext.Digamma(alpha+fn))
		return logf, deriv
	}
}

// posteriorDraw samples α from its posterior by adaptive rejection
// sampling on log α, starting the envelope around the current value.
func (p AlphaPrior) posteriorDraw(cur float64, k, n int, rng *rand.Rand) (float64, error) {
	f := p.logPosterior(k, n)

	// The derivative falls from Shape+k-1 > 0 toward -∞. Stepping
	// outward until the slopes are well away from 0 brackets the mode
	// with tails steep enough that proposals stay near it.
	leftSlope := math.Min(1, (p.Shape+float64(k)-1)/2)
	eta0 := math.Log(cur)
	if math.IsInf(eta0, 0) || math.IsNaN(eta0) {
		eta0 = 0
	}
	left, right := eta0-1, eta0+1
	for i := 0; i < 64; i++ {
		if _, d := f(left); d >= leftSlope {
			break
		}
		left -= 2
	}
	for i := 0; i < 64; i++ {
		if _, d := f(right); d <= -1 {
			break
		}
		right += 2
	}
	eta, err := ars.SampleFunc(f, math.Inf(-1), math.Inf(1), []float64{left, right}, rng)
	if err != nil {
		return 0, fmt.Errorf("concentration: %w", err)
	}
	return math.Exp(eta), nil
}
