// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphalg

import "math/bits"

// NodeMarks is a set of marked nodes in a graph.
type NodeMarks struct {
	marks []uint64
}

// NewNodeMarks returns a node mark set with no marks set.
func NewNodeMarks() *NodeMarks {
	return &NodeMarks{make([]uint64, 1024/64)}
}

// Test returns whether node i is marked.
func (m *NodeMarks) Test(i int) bool {
	if i < 0 || i/64 >= len(m.marks) {
		return false
	}
	return m.marks[i/64]&(1<<uint(i%64)) != 0
}

// Mark marks node i.
func (m *NodeMarks) Mark(i int) {
	if i/64 >= len(m.marks) {
		m.grow(i)
	}
	m.marks[i/64] |= 1 << uint(i%64)
}

// Next returns the smallest marked node greater than i, or -1.
func (m *NodeMarks) Next(i int) int {
	i++
	if i < 0 {
		i = 0
	}
	for w := i / 64; w < len(m.marks); w++ {
		word := m.marks[w]
		if w == i/64 {
			word &^= 1<<uint(i%64) - 1
		}
		if word != 0 {
			return w*64 + bits.TrailingZeros64(word)
		}
	}
	return -1
}

func (m *NodeMarks) grow(i int) {
	n := i/64 + 1
	// Round n up to a power of two.
	k := 1
	for k < n {
		k <<= 1
	}
	marks := make([]uint64, k)
	copy(marks, m.marks)
	m.marks = marks
}
