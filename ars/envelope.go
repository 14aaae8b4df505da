// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ars implements adaptive rejection sampling from log-concave
// univariate densities.
//
// The sampler keeps an Envelope of points on the log density. Tangents
// at those points bound log f from above and chords between them bound
// it from below. Draws come from the exponentiated upper bound and are
// accepted by comparison against the lower bound, or failing that
// against log f itself. Every evaluation of log f is added to the
// envelope, so the bounds tighten as sampling proceeds.
//
// Log-concavity is a precondition that is not checked. On a density
// that is not log-concave the tangents may cut below log f and the
// samples are wrong.
package ars

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnboundedEnvelope is returned when the upper envelope has
	// infinite area: an unbounded side of the support whose
	// outermost point does not slope toward it.
	ErrUnboundedEnvelope = errors.New("upper envelope is not integrable")

	// ErrInvalidSupport is returned for an empty support, too few
	// initial points, or points outside the support.
	ErrInvalidSupport = errors.New("invalid support")

	// ErrNonFinite is returned for an initial point whose log density
	// or derivative is NaN or infinite.
	ErrNonFinite = errors.New("log density is not finite")
)

// A Point is one evaluation of a log density.
type Point struct {
	X     float64
	LogF  float64
	Deriv float64
}

func (p Point) finite() bool {
	return !math.IsInf(p.LogF, 0) && !math.IsNaN(p.LogF) &&
		!math.IsInf(p.Deriv, 0) && !math.IsNaN(p.Deriv)
}

// An Envelope bounds a concave function by tangents from above and by
// chords from below.
//
// Points are kept in an append-only arena. order indexes the arena by
// increasing X, and z and logArea are derived from it: segment i of
// the upper envelope is the tangent at the i'th point, spanning
// [z[i-1], z[i]] with z[-1] = Lo and z[len-1] = Hi.
type Envelope struct {
	Lo, Hi float64

	arena []Point
	order []int

	z       []float64
	logArea []float64
	cum     []float64
}

// NewEnvelope builds an envelope over [lo, hi] from at least two
// points. Either bound may be infinite, in which case the outermost
// point on that side must slope toward it.
func NewEnvelope(lo, hi float64, pts []Point) (*Envelope, error) {
	if !(lo < hi) {
		return nil, fmt.Errorf("support [%v, %v]: %w", lo, hi, ErrInvalidSupport)
	}
	e := &Envelope{Lo: lo, Hi: hi}
	for _, p := range pts {
		if p.X < lo || p.X > hi || math.IsNaN(p.X) {
			return nil, fmt.Errorf("point %v outside [%v, %v]: %w", p.X, lo, hi, ErrInvalidSupport)
		}
		if !p.finite() {
			return nil, fmt.Errorf("point %+v: %w", p, ErrNonFinite)
		}
		e.insert(p)
	}
	if len(e.order) < 2 {
		return nil, fmt.Errorf("%d distinct points: %w", len(e.order), ErrInvalidSupport)
	}
	if math.IsInf(lo, -1) && !(e.at(0).Deriv > 0) {
		return nil, fmt.Errorf("left derivative %v at %v: %w", e.at(0).Deriv, e.at(0).X, ErrUnboundedEnvelope)
	}
	if last := e.at(e.Len() - 1); math.IsInf(hi, 1) && !(last.Deriv < 0) {
		return nil, fmt.Errorf("right derivative %v at %v: %w", last.Deriv, last.X, ErrUnboundedEnvelope)
	}
	e.rebuild()
	return e, nil
}

// Len returns the number of points in e.
func (e *Envelope) Len() int {
	return len(e.order)
}

func (e *Envelope) at(i int) Point {
	return e.arena[e.order[i]]
}

// Points returns the points of e in increasing order of X.
func (e *Envelope) Points() []Point {
	out := make([]Point, len(e.order))
	for i := range out {
		out[i] = e.at(i)
	}
	return out
}

// Insert adds p to e. It reports whether p was new; a point at an
// existing abscissa, outside the support, or with a non-finite value
// is ignored.
func (e *Envelope) Insert(p Point) bool {
	if p.X < e.Lo || p.X > e.Hi || math.IsNaN(p.X) || !p.finite() {
		return false
	}
	if !e.insert(p) {
		return false
	}
	e.rebuild()
	return true
}

func (e *Envelope) insert(p Point) bool {
	i := e.search(p.X)
	if i < len(e.order) && e.at(i).X == p.X {
		return false
	}
	e.arena = append(e.arena, p)
	e.order = append(e.order, 0)
	copy(e.order[i+1:], e.order[i:])
	e.order[i] = len(e.arena) - 1
	return true
}

// search returns the index in order of the first point with X >= x.
func (e *Envelope) search(x float64) int {
	return sort.Search(len(e.order), func(i int) bool { return e.at(i).X >= x })
}

// rebuild recomputes the tangent intersections and segment areas.
func (e *Envelope) rebuild() {
	k := len(e.order)
	e.z = append(e.z[:0], make([]float64, k)...)
	for i := 0; i < k-1; i++ {
		e.z[i] = intersect(e.at(i), e.at(i+1))
	}
	e.z[k-1] = e.Hi

	e.logArea = append(e.logArea[:0], make([]float64, k)...)
	a := e.Lo
	for i := 0; i < k; i++ {
		e.logArea[i] = segmentLogArea(e.at(i), a, e.z[i])
		a = e.z[i]
	}

	// Segment weights relative to the largest, for selection.
	top := floats.Max(e.logArea)
	e.cum = append(e.cum[:0], make([]float64, k)...)
	for i, la := range e.logArea {
		e.cum[i] = math.Exp(la - top)
	}
	floats.CumSum(e.cum, e.cum)
}

// intersect returns the abscissa where the tangents at p and q meet,
// clamped to [p.X, q.X].
func intersect(p, q Point) float64 {
	dd := p.Deriv - q.Deriv
	var z float64
	if math.Abs(dd) <= 1e-12*math.Max(math.Abs(p.Deriv), math.Abs(q.Deriv)) || dd == 0 {
		// Parallel tangents; log f is linear between them.
		z = (p.X + q.X) / 2
	} else {
		z = (q.LogF - p.LogF - q.X*q.Deriv + p.X*p.Deriv) / dd
	}
	if !(z >= p.X) {
		z = p.X
	} else if z > q.X {
		z = q.X
	}
	return z
}

func tangent(p Point, x float64) float64 {
	if p.Deriv == 0 {
		return p.LogF
	}
	return p.LogF + p.Deriv*(x-p.X)
}

// segmentLogArea returns the log of the integral of exp(tangent(p, x))
// over [a, b].
func segmentLogArea(p Point, a, b float64) float64 {
	d := p.Deriv
	switch {
	case b <= a:
		return math.Inf(-1)
	case d > 0:
		return tangent(p, b) + math.Log(-math.Expm1(-d*(b-a))) - math.Log(d)
	case d < 0:
		return tangent(p, a) + math.Log(-math.Expm1(d*(b-a))) - math.Log(-d)
	}
	return p.LogF + math.Log(b-a)
}

// segment returns the index of the upper envelope segment containing x.
func (e *Envelope) segment(x float64) int {
	i := sort.SearchFloat64s(e.z, x)
	if i >= len(e.z) {
		i = len(e.z) - 1
	}
	return i
}

// Upper returns the upper envelope at x, which is >= log f(x) for a
// log-concave f. It is -Inf outside the support.
func (e *Envelope) Upper(x float64) float64 {
	if x < e.Lo || x > e.Hi {
		return math.Inf(-1)
	}
	return tangent(e.at(e.segment(x)), x)
}

// Lower returns the lower envelope at x, which is <= log f(x) for a
// log-concave f. It is -Inf outside the hull of the points.
func (e *Envelope) Lower(x float64) float64 {
	k := e.Len()
	if x < e.at(0).X || x > e.at(k-1).X {
		return math.Inf(-1)
	}
	i := e.search(x)
	p := e.at(i)
	if p.X == x {
		return p.LogF
	}
	q := e.at(i - 1)
	return ((p.X-x)*q.LogF + (x-q.X)*p.LogF) / (p.X - q.X)
}

// LogArea returns the log of the total area under exp(Upper).
func (e *Envelope) LogArea() float64 {
	return floats.LogSumExp(e.logArea)
}

// Rand draws from the density proportional to exp(Upper).
func (e *Envelope) Rand(rng *rand.Rand) float64 {
	total := e.cum[len(e.cum)-1]
	i := sort.SearchFloat64s(e.cum, rng.Float64()*total)
	if i >= len(e.cum) {
		i = len(e.cum) - 1
	}
	a := e.Lo
	if i > 0 {
		a = e.z[i-1]
	}
	return segmentRand(e.at(i), a, e.z[i], rng.Float64())
}

// segmentRand inverts the CDF of exp(tangent(p, x)) on [a, b] at u.
func segmentRand(p Point, a, b, u float64) float64 {
	d := p.Deriv
	var x float64
	switch {
	case d > 0:
		x = b + math.Log1p((1-u)*math.Expm1(-d*(b-a)))/d
	case d < 0:
		x = a + math.Log1p(u*math.Expm1(d*(b-a)))/d
	default:
		x = a + u*(b-a)
	}
	// Rounding can land a hair outside the segment.
	return math.Max(a, math.Min(b, x))
}
