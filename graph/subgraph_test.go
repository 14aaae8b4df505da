// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// adjacency flattens g for comparison.
func adjacency(g Graph) [][]int {
	out := make([][]int, g.NumNodes())
	for i := range out {
		out[i] = append([]int{}, g.Out(i)...)
	}
	return out
}

func TestThreshold(t *testing.T) {
	g := NewWeightedGraph(4)
	g.AddUndirected(0, 1, 0.9)
	g.AddUndirected(1, 2, 0.2)
	g.AddUndirected(2, 3, 0.5)
	g.AddUndirected(3, 3, 1)

	sub := Threshold(g, 0.5)
	assert.Equal(t, [][]int{
		0: {1},
		1: {0},
		2: {3},
		3: {2, 3},
	}, adjacency(sub))
	assert.Equal(t, 0.5, sub.OutWeight(3, 0))
	assert.Equal(t, Graph(g), sub.Underlying())
	assert.Equal(t, 2, sub.UnderlyingNode(2))
}
