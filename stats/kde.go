// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
)

// KDE represents options for constructing a kernel density estimate.
//
// Kernel density estimation constructs a smooth estimate ƒ̂(x) of an
// unknown density ƒ(x) from a sample of it. Here it is mostly used to
// turn the point masses of an empirical posterior (MCMC draws, a
// particle set) into a density that can be plotted or evaluated by
// the caller.
//
// The default (zero) value of KDE is a reasonable default
// configuration.
type KDE struct {
	// Kernel is the kernel to use for the KDE.
	Kernel KDEKernel

	// Bandwidth is the bandwidth to use for the KDE.
	//
	// If this is zero, the bandwidth is computed from the
	// provided data using BandwidthScott.
	Bandwidth float64

	// BoundaryMethod is the boundary correction method to use for
	// the KDE. The default value is BoundaryReflect; however, the
	// default bounds are effectively +/-inf, which is equivalent
	// to performing no boundary correction.
	BoundaryMethod KDEBoundaryMethod

	// [BoundaryMin, BoundaryMax) specify a bounded support for
	// the KDE. If both are 0 (their default values), they are
	// treated as +/-inf. A probability parameter, for example,
	// has support [0, 1).
	BoundaryMin float64
	BoundaryMax float64
}

// BandwidthSilverman is a bandwidth estimator implementing
// Silverman's Rule of Thumb. It's fast, but not very robust to
// outliers as it assumes data is approximately normal.
//
// Silverman, B. W. (1986) Density Estimation.
func BandwidthSilverman(data interface {
	StdDev() float64
	Weight() float64
}) float64 {
	return 1.06 * data.StdDev() * math.Pow(data.Weight(), -1.0/5)
}

// BandwidthScott is a bandwidth estimator implementing Scott's Rule.
// It chooses the minimum of the sample's standard deviation and a
// robust, IQR-based estimate of a Gaussian standard deviation.
//
// Scott, D. W. (1992) Multivariate Density Estimation: Theory,
// Practice, and Visualization.
func BandwidthScott(data interface {
	StdDev() float64
	Weight() float64
	Percentile(float64) float64
}) float64 {
	iqr := data.Percentile(0.75) - data.Percentile(0.25)
	hScale := 1.06 * math.Pow(data.Weight(), -1.0/5)
	stdDev := data.StdDev()
	if iqr == 0 || stdDev < iqr/1.349 {
		return hScale * stdDev
	}
	return hScale * (iqr / 1.349)
}

// KDEKernel represents a kernel to use for a KDE.
type KDEKernel int

const (
	GaussianKernel KDEKernel = iota

	// DeltaKernel is a Dirac delta function. The PDF of such a
	// KDE is not well-defined, but the CDF will represent each
	// sample as an instantaneous increase. This kernel ignores
	// bandwidth and never requires boundary correction.
	DeltaKernel
)

// KDEBoundaryMethod represents a boundary correction method for
// constructing a KDE with bounded support.
type KDEBoundaryMethod int

const (
	// BoundaryReflect reflects the density estimate at the
	// boundaries. For a KDE with support [0, inf), this is
	// ƒ̂ᵣ(x)=ƒ̂(x)+ƒ̂(-x) for x>=0. Only the first reflection at
	// each boundary is taken, which is exact for half-bounded
	// supports and accurate when the bandwidth is small relative
	// to the width of a bounded support.
	BoundaryReflect KDEBoundaryMethod = iota

	// boundaryNone is used internally when the bounds are -/+inf.
	boundaryNone
)

// From returns the kernel density estimate for the sample s.
//
// It panics if s is empty or its weights do not match its values.
func (k KDE) From(s Sample) Dist {
	s.check()
	if len(s.Xs) == 0 {
		panic("KDE of empty sample")
	}

	h := k.Bandwidth
	if h == 0 {
		h = BandwidthScott(s)
	}
	if h == 0 {
		// All samples are identical.
		h = 1e-9
	}

	var kernel kdeKernel
	switch k.Kernel {
	default:
		panic(fmt.Sprint("unknown kernel ", k.Kernel))
	case GaussianKernel:
		kernel = NormalDist{0, h}
	case DeltaKernel:
		kernel = DeltaDist{0}
	}

	bm := k.BoundaryMethod
	min, max := k.BoundaryMin, k.BoundaryMax
	if min == 0 && max == 0 {
		min, max = math.Inf(-1), math.Inf(1)
	}
	if math.IsInf(min, -1) && math.IsInf(max, 1) || k.Kernel == DeltaKernel {
		bm = boundaryNone
	}

	return &kdeDist{kernel, s, bm, min, max}
}

type kdeKernel interface {
	PDFEach(xs []float64) []float64
	CDFEach(xs []float64) []float64
}

type kdeDist struct {
	kernel   kdeKernel
	s        Sample
	bm       KDEBoundaryMethod
	min, max float64 // Support bounds
}

// shifted returns x - kde.s.Xs. Evaluating kernels shifted by each
// sample at x is equivalent to evaluating one unshifted kernel at
// x - Xs.
func (kde *kdeDist) shifted(x float64) []float64 {
	txs := make([]float64, len(kde.s.Xs))
	for i, xi := range kde.s.Xs {
		txs[i] = x - xi
	}
	return txs
}

// weighted averages kernel evaluations ys by the sample weights.
func (kde *kdeDist) weighted(ys []float64) float64 {
	wys := Sample{Xs: ys, Weights: kde.s.Weights}
	return wys.Sum() / wys.Weight()
}

func (kde *kdeDist) PDF(x float64) float64 {
	if x < kde.min || x >= kde.max {
		return 0
	}
	y := func(x float64) float64 {
		return kde.weighted(kde.kernel.PDFEach(kde.shifted(x)))
	}
	p := y(x)
	if kde.bm == BoundaryReflect {
		if !math.IsInf(kde.min, -1) {
			p += y(2*kde.min - x)
		}
		if !math.IsInf(kde.max, 1) {
			p += y(2*kde.max - x)
		}
	}
	return p
}

func (kde *kdeDist) PDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = kde.PDF(x)
	}
	return res
}

func (kde *kdeDist) CDF(x float64) float64 {
	if x < kde.min {
		return 0
	} else if x >= kde.max {
		return 1
	}
	y := func(x float64) float64 {
		return kde.weighted(kde.kernel.CDFEach(kde.shifted(x)))
	}
	c := y(x)
	if kde.bm == BoundaryReflect {
		// Integrate the reflected kernels over [min, x].
		c -= y(kde.min)
		if !math.IsInf(kde.min, -1) {
			c += y(kde.min) - y(2*kde.min-x)
		}
		if !math.IsInf(kde.max, 1) {
			c += y(2*kde.max-kde.min) - y(2*kde.max-x)
		}
	}
	return math.Max(0, math.Min(1, c))
}

func (kde *kdeDist) CDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = kde.CDF(x)
	}
	return res
}

func (kde *kdeDist) Bounds() (low float64, high float64) {
	lowX, highX := kde.s.Bounds()
	if lowX == highX {
		lowX -= 1
		highX += 1
	}

	// Find the end points that contain 99% of the CDF's weight.
	// bisect requires that the root be bracketed, so expand the
	// range first if necessary.
	const (
		lowY      = 0.005
		highY     = 0.995
		tolerance = 0.001
	)
	for kde.CDF(lowX) > lowY && lowX > kde.min {
		lowX -= highX - lowX
	}
	for kde.CDF(highX) < highY && highX < kde.max {
		highX += highX - lowX
	}
	low, _ = bisect(func(x float64) float64 { return kde.CDF(x) - lowY }, lowX, highX, tolerance)
	high, _ = bisect(func(x float64) float64 { return kde.CDF(x) - highY }, lowX, highX, tolerance)

	// Expand width by 20% to give some margins
	width := high - low
	low, high = low-0.1*width, high+0.1*width

	return math.Max(low, kde.min), math.Min(high, kde.max)
}

// bisect returns an x in [low, high] such that |f(x)| <= tolerance
// using the bisection method. f(low) and f(high) must have opposite
// signs. If the root is not bracketed, bisect returns false.
func bisect(f func(float64) float64, low, high, tolerance float64) (float64, bool) {
	flow, fhigh := f(low), f(high)
	if -tolerance <= flow && flow <= tolerance {
		return low, true
	}
	if -tolerance <= fhigh && fhigh <= tolerance {
		return high, true
	}
	if math.Signbit(flow) == math.Signbit(fhigh) {
		return 0, false
	}
	for i := 0; i < 200; i++ {
		mid := (high + low) / 2
		fmid := f(mid)
		if -tolerance <= fmid && fmid <= tolerance {
			return mid, true
		}
		if math.Signbit(fmid) == math.Signbit(flow) {
			low, flow = mid, fmid
		} else {
			high = mid
		}
	}
	return (high + low) / 2, true
}
