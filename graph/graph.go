// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph provides small directed graph types over dense integer
// node IDs. An undirected graph is a directed graph with every edge
// present in both directions.
package graph

// Graph is a directed graph whose nodes are numbered [0, NumNodes()).
type Graph interface {
	// NumNodes returns the number of nodes in this graph.
	NumNodes() int

	// Out returns the nodes to which node i has an edge. The e'th
	// edge of node i is identified by Edge{i, e}.
	Out(i int) []int
}

// Edge identifies the Edge'th out-edge of Node.
type Edge struct {
	Node, Edge int
}

// IntGraph is a Graph stored as adjacency lists.
type IntGraph [][]int

func (g IntGraph) NumNodes() int {
	return len(g)
}

func (g IntGraph) Out(i int) []int {
	return g[i]
}
