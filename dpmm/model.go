// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dpmm clusters observations with a Dirichlet process mixture
// model fit by collapsed Gibbs sampling.
//
// Each cluster carries a conjugate posterior over its component
// parameters, so the sampler only needs the posterior predictive
// density of an observation under a cluster. A Model supplies empty
// cluster posteriors; NormalGamma and Gaussian are provided.
package dpmm

import "errors"

// ErrNoObservations is returned when a sampler is given no data.
var ErrNoObservations = errors.New("no observations")

// A ClusterPosterior is the posterior over one mixture component's
// parameters given the observations assigned to it.
//
// Implementations must allow LogPredictive to be called on distinct
// ClusterPosteriors from distinct goroutines.
type ClusterPosterior[O any] interface {
	// Add conditions the posterior on x.
	Add(x O)

	// Remove undoes a previous Add(x).
	Remove(x O)

	// LogPredictive returns the log posterior predictive density
	// of x.
	LogPredictive(x O) float64

	// Len returns the number of observations in the posterior.
	Len() int

	// Clone returns an independent copy.
	Clone() ClusterPosterior[O]
}

// A Model is a conjugate prior for mixture components.
type Model[O any] interface {
	// NewCluster returns a posterior with no observations, which
	// is the prior.
	NewCluster() ClusterPosterior[O]
}

// A Cluster is one block of a partition.
type Cluster[O any] struct {
	Posterior ClusterPosterior[O]

	// Members are the indexes of the cluster's observations in
	// increasing order.
	Members []int
}
