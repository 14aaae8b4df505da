// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

// A Subgraph is a Weighted graph that consists of a subset of the
// nodes and edges of another, underlying Graph.
type Subgraph interface {
	Weighted

	// Underlying returns the underlying graph that this is a
	// subgraph of.
	Underlying() Graph

	// UnderlyingNode returns the ID in the underlying graph of
	// node i of this graph.
	UnderlyingNode(i int) int
}

// Threshold returns the subgraph of g that keeps every node but only
// the edges of weight at least min.
func Threshold(g Weighted, min float64) Subgraph {
	return subgraphEdges(g, func(e Edge) bool {
		return g.OutWeight(e.Node, e.Edge) >= min
	})
}

// subgraphEdges returns the subgraph of g with every node and the
// edges for which keepEdge returns true.
func subgraphEdges(g Weighted, keepEdge func(Edge) bool) Subgraph {
	nodes := make([]listSubgraphNode, g.NumNodes())
	for n := range nodes {
		node := &nodes[n]
		node.oldNode = n
		for j, n2 := range g.Out(n) {
			if !keepEdge(Edge{n, j}) {
				continue
			}
			node.out = append(node.out, n2)
			node.weights = append(node.weights, g.OutWeight(n, j))
		}
	}

	return &listSubgraph{g, nodes}
}

type listSubgraph struct {
	underlying Graph
	nodes      []listSubgraphNode
}

type listSubgraphNode struct {
	out     []int // Adjacency list
	weights []float64
	oldNode int // Node ID in underlying graph
}

func (s *listSubgraph) NumNodes() int {
	return len(s.nodes)
}

func (s *listSubgraph) Out(node int) []int {
	return s.nodes[node].out
}

func (s *listSubgraph) OutWeight(node, edge int) float64 {
	return s.nodes[node].weights[edge]
}

func (s *listSubgraph) Underlying() Graph {
	return s.underlying
}

func (s *listSubgraph) UnderlyingNode(node int) int {
	return s.nodes[node].oldNode
}
