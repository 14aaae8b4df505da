// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "errors"

var (
	// ErrDimension is returned when the dimensions of a model and
	// the data or belief it is applied to disagree.
	ErrDimension = errors.New("dimension mismatch")

	// ErrNotPositiveDefinite is returned when a covariance matrix
	// that must be factorized is not positive definite.
	ErrNotPositiveDefinite = errors.New("matrix is not positive definite")

	// ErrZeroWeight is returned when a weighted collection has no
	// positive weight left to normalize.
	ErrZeroWeight = errors.New("all weights are zero")

	// ErrInvalidProbability is returned for a probability outside
	// [0, 1].
	ErrInvalidProbability = errors.New("probability out of range [0, 1]")

	// ErrNonPositive is returned for a variance, scale, count or
	// degrees of freedom that must be strictly positive.
	ErrNonPositive = errors.New("value must be positive")

	// ErrSampleSize is returned when paired inputs differ in length
	// or an input is empty.
	ErrSampleSize = errors.New("sample is too small or sizes differ")
)
