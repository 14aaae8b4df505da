// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats provides the distribution and belief types shared by
// the inference packages.
//
// A belief is whatever currently represents knowledge of an unknown
// quantity. It is either closed-form (Gaussian) or empirical (a
// weighted set of particles or sampled parameter values). Estimators
// own the beliefs they update; callers that want an independent copy
// must Clone it.
//
// All sampling takes an explicit *rand.Rand. Nothing in this module
// reads a global random source, so identically seeded computations
// produce identical results.
package stats // import "github.com/aclements/go-moreinfer/stats"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
