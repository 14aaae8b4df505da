// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ars

import (
	"gonum.org/v1/gonum/diff/fd"

	"github.com/aclements/go-moreinfer/stats"
)

// A LogDensity evaluates a log density and its derivative at a point.
// The density need not be normalized.
type LogDensity interface {
	stats.Evaluator[float64, Point]
}

// Func is a LogDensity computed by a function returning log f(x) and
// its derivative.
type Func func(x float64) (logf, deriv float64)

func (f Func) Evaluate(x float64) Point {
	logf, deriv := f(x)
	return Point{X: x, LogF: logf, Deriv: deriv}
}

// Numeric returns a LogDensity for logf whose derivative is
// approximated by central finite differences.
func Numeric(logf func(x float64) float64) LogDensity {
	return numeric{logf, &fd.Settings{Formula: fd.Central}}
}

type numeric struct {
	f        func(float64) float64
	settings *fd.Settings
}

func (n numeric) Evaluate(x float64) Point {
	return Point{X: x, LogF: n.f(x), Deriv: fd.Derivative(n.f, x, n.settings)}
}
