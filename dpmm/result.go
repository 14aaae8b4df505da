// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dpmm

import (
	"fmt"

	"github.com/aclements/go-moreinfer/graph"
	"github.com/aclements/go-moreinfer/graph/graphalg"
	"github.com/aclements/go-moreinfer/stats"
)

// A Partition is one posterior sample of the clustering.
type Partition struct {
	// Assignments gives the cluster label of each observation.
	// Labels are numbered in order of each cluster's smallest
	// member, so equal partitions have equal Assignments.
	Assignments []int

	// K is the number of clusters.
	K int

	Alpha float64

	// LogLikelihood is the log marginal likelihood of the data
	// given the partition. LogPrior is the log probability of the
	// partition given Alpha.
	LogLikelihood float64
	LogPrior      float64
}

// Result is the output of a Sampler run.
type Result struct {
	// N is the number of observations.
	N       int
	Samples []Partition
}

// ClusterCounts returns the posterior distribution of the number of
// clusters, with each sample weighted 1.
func (r *Result) ClusterCounts() *stats.Histogram[int] {
	h := new(stats.Histogram[int])
	for _, p := range r.Samples {
		h.Add(p.K, 1)
	}
	return h
}

// ModalClusterCount returns the most frequent number of clusters.
func (r *Result) ModalClusterCount() int {
	k, _ := r.ClusterCounts().Mode()
	return k
}

// MAP returns the sampled partition of greatest joint probability
// with the data.
func (r *Result) MAP() Partition {
	best := 0
	for i, p := range r.Samples {
		if p.LogLikelihood+p.LogPrior > r.Samples[best].LogLikelihood+r.Samples[best].LogPrior {
			best = i
		}
	}
	return r.Samples[best]
}

// CoClustering returns the undirected graph over observations whose
// edge weights are the fraction of samples in which the two
// observations share a cluster. Pairs never clustered together have no
// edge.
func (r *Result) CoClustering() *graph.WeightedGraph {
	g := graph.NewWeightedGraph(r.N)
	if len(r.Samples) == 0 {
		return g
	}
	type pair struct{ a, b int }
	counts := make(map[pair]int)
	var pairs []pair
	for _, p := range r.Samples {
		members := make(map[int][]int)
		for i, l := range p.Assignments {
			members[l] = append(members[l], i)
		}
		for l := 0; l < p.K; l++ {
			m := members[l]
			for a := 0; a < len(m); a++ {
				for b := a + 1; b < len(m); b++ {
					e := pair{m[a], m[b]}
					if counts[e] == 0 {
						pairs = append(pairs, e)
					}
					counts[e]++
				}
			}
		}
	}
	for _, e := range pairs {
		g.AddUndirected(e.a, e.b, float64(counts[e])/float64(len(r.Samples)))
	}
	return g
}

// Consensus returns a point estimate of the partition: the connected
// components of the graph linking observations that share a cluster in
// at least the given fraction of samples. Components are ordered by
// their smallest member.
func (r *Result) Consensus(threshold float64) ([][]int, error) {
	if !(threshold > 0 && threshold <= 1) {
		return nil, fmt.Errorf("consensus threshold %v: %w", threshold, stats.ErrInvalidProbability)
	}
	return graphalg.Components(graph.Threshold(r.CoClustering(), threshold)), nil
}
