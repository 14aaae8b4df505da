// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

// Histogram accumulates weight per distinct value. Keys are kept in
// first-insertion order so that iteration, and therefore anything
// computed from it, is deterministic.
type Histogram[T comparable] struct {
	keys   []T
	weight map[T]float64
}

// Distinct returns the histogram of the values of e, each weighted by
// its total weight in e.
func Distinct[T comparable](e *Empirical[T]) *Histogram[T] {
	h := new(Histogram[T])
	for i, v := range e.Values {
		h.Add(v, e.Weights[i])
	}
	return h
}

// Add adds w to the weight of v.
func (h *Histogram[T]) Add(v T, w float64) {
	if h.weight == nil {
		h.weight = make(map[T]float64)
	}
	if _, ok := h.weight[v]; !ok {
		h.keys = append(h.keys, v)
	}
	h.weight[v] += w
}

// Weight returns the accumulated weight of v, or 0.
func (h *Histogram[T]) Weight(v T) float64 {
	return h.weight[v]
}

// Keys returns the distinct values in first-insertion order.
func (h *Histogram[T]) Keys() []T {
	return append([]T(nil), h.keys...)
}

// Len returns the number of distinct values.
func (h *Histogram[T]) Len() int {
	return len(h.keys)
}

func (h *Histogram[T]) Total() float64 {
	var t float64
	for _, k := range h.keys {
		t += h.weight[k]
	}
	return t
}

// Fraction returns v's share of the total weight.
func (h *Histogram[T]) Fraction(v T) float64 {
	t := h.Total()
	if t == 0 {
		return 0
	}
	return h.weight[v] / t
}

// Mode returns the value with the greatest weight. Ties go to the
// value inserted first. ok is false if h is empty.
func (h *Histogram[T]) Mode() (mode T, ok bool) {
	best := -1.0
	for _, k := range h.keys {
		if w := h.weight[k]; w > best {
			mode, best, ok = k, w, true
		}
	}
	return
}
