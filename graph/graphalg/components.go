// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graphalg implements algorithms on graph.Graph.
package graphalg

import "github.com/aclements/go-moreinfer/graph"

// PreOrder returns the nodes reachable from root in depth-first
// pre-order, skipping and marking nodes in visited. If visited is
// nil, a fresh mark set is used.
func PreOrder(g graph.Graph, root int, visited *NodeMarks) []int {
	if visited == nil {
		visited = NewNodeMarks()
	}
	if visited.Test(root) {
		return nil
	}
	out := []int{}
	stack := []int{root}
	visited.Mark(root)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		// Push successors in reverse so the first is visited
		// first.
		succs := g.Out(n)
		for i := len(succs) - 1; i >= 0; i-- {
			if s := succs[i]; !visited.Test(s) {
				visited.Mark(s)
				stack = append(stack, s)
			}
		}
	}
	return out
}

// Components returns the connected components of g, which must be
// undirected (every edge present in both directions). Each component
// is sorted, and components are ordered by their smallest node.
func Components(g graph.Graph) [][]int {
	visited := NewNodeMarks()
	var comps [][]int
	for n := 0; n < g.NumNodes(); n++ {
		if visited.Test(n) {
			continue
		}
		// n is the smallest node of its component, and reading
		// the members back from a mark set puts them in order.
		members := NewNodeMarks()
		for _, v := range PreOrder(g, n, visited) {
			members.Mark(v)
		}
		var comp []int
		for v := n; v >= 0; v = members.Next(v) {
			comp = append(comp, v)
		}
		comps = append(comps, comp)
	}
	return comps
}
