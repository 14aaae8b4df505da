// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

// Weighted is a directed graph with a weight on every edge.
type Weighted interface {
	Graph

	// OutWeight returns the weight of the e'th edge out from node
	// i. e must be in the range [0, len(Out(i))).
	OutWeight(i, e int) float64
}

// WeightedGraph is a Weighted stored as adjacency lists with parallel
// weight lists.
type WeightedGraph struct {
	out     [][]int
	weights [][]float64
}

// NewWeightedGraph returns a graph of n nodes with no edges.
func NewWeightedGraph(n int) *WeightedGraph {
	return &WeightedGraph{
		out:     make([][]int, n),
		weights: make([][]float64, n),
	}
}

// AddEdge adds an edge from i to j with weight w.
func (g *WeightedGraph) AddEdge(i, j int, w float64) {
	g.out[i] = append(g.out[i], j)
	g.weights[i] = append(g.weights[i], w)
}

// AddUndirected adds edges i->j and j->i, both with weight w.
func (g *WeightedGraph) AddUndirected(i, j int, w float64) {
	g.AddEdge(i, j, w)
	if i != j {
		g.AddEdge(j, i, w)
	}
}

func (g *WeightedGraph) NumNodes() int {
	return len(g.out)
}

func (g *WeightedGraph) Out(i int) []int {
	return g.out[i]
}

func (g *WeightedGraph) OutWeight(i, e int) float64 {
	return g.weights[i][e]
}
