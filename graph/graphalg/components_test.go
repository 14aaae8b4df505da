// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphalg

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-moreinfer/graph"
)

func TestNodeMarksNext(t *testing.T) {
	tests := [][]int{
		{0},
		{1},
		{0, 4},
		{},        // No marks
		{0, 100},  // Big gap
		{63, 64},  // Word boundary
		{5, 5000}, // Growth
	}

	for _, test := range tests {
		m := NewNodeMarks()
		for _, id := range test {
			m.Mark(id)
		}
		got := []int{}
		for i := m.Next(-1); i >= 0; i = m.Next(i) {
			got = append(got, i)
		}
		if !reflect.DeepEqual(test, got) {
			t.Errorf("want %v, got %v", test, got)
		}
		if len(test) > 0 && !m.Test(test[len(test)-1]) {
			t.Errorf("%v: last mark not set", test)
		}
	}
}

func TestPreOrder(t *testing.T) {
	g := graph.IntGraph{
		0: {1, 2},
		1: {3},
		2: {3},
		3: {},
		4: {0},
	}
	assert.Equal(t, []int{0, 1, 3, 2}, PreOrder(g, 0, nil))

	visited := NewNodeMarks()
	visited.Mark(1)
	assert.Equal(t, []int{0, 2, 3}, PreOrder(g, 0, visited))
	assert.Nil(t, PreOrder(g, 2, visited))
}

func TestComponents(t *testing.T) {
	g := graph.NewWeightedGraph(7)
	g.AddUndirected(5, 0, 1)
	g.AddUndirected(0, 3, 1)
	g.AddUndirected(1, 6, 1)
	g.AddUndirected(4, 4, 1)

	assert.Equal(t, [][]int{{0, 3, 5}, {1, 6}, {2}, {4}}, Components(g))
	assert.Nil(t, Components(graph.IntGraph{}))

	// A star through the last node, spanning many mark words.
	const n = 3000
	star := graph.NewWeightedGraph(n)
	want := []int{}
	for i := 0; i < n-1; i += 2 {
		star.AddUndirected(n-1, i, 1)
		want = append(want, i)
	}
	want = append(want, n-1)
	comps := Components(star)
	require.Len(t, comps, 1+(n-1)/2)
	assert.Equal(t, want, comps[0])
	assert.Equal(t, []int{1}, comps[1])
}
