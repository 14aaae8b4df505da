// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag reports the health of running samplers.
//
// Poor tuning is not an error: a random walk that accepts almost
// nothing, or a particle set whose weight has collapsed onto a few
// particles, still returns a result. Samplers report these signals to
// an Observer so callers can detect them.
package diag

// An Observer receives sampler diagnostics. The sampler argument names
// the algorithm ("metropolis", "rejection", "particle", "ars", ...).
//
// Implementations must be safe to call from the goroutine driving a
// sampler. Samplers never call an Observer concurrently.
type Observer interface {
	// Proposal records one proposal and whether it was accepted.
	Proposal(sampler string, accepted bool)

	// EffectiveSampleSize records the effective sample size of a
	// weighted sample.
	EffectiveSampleSize(sampler string, ess float64)

	// Resampled records one resampling of a particle set.
	Resampled(sampler string)

	// Clusters records the number of clusters in a mixture state.
	Clusters(k int)
}

// Nop is an Observer that discards everything.
var Nop Observer = nop{}

type nop struct{}

func (nop) Proposal(string, bool)                {}
func (nop) EffectiveSampleSize(string, float64) {}
func (nop) Resampled(string)                    {}
func (nop) Clusters(int)                        {}

// OrNop returns o, or Nop if o is nil.
func OrNop(o Observer) Observer {
	if o == nil {
		return Nop
	}
	return o
}

// Counter is an Observer that tallies in memory. It is useful in tests
// and for a summary at the end of a run.
type Counter struct {
	Proposals map[string]int
	Accepted  map[string]int
	Resamples map[string]int
	LastESS   map[string]float64
	LastK     int
}

func (c *Counter) init() {
	if c.Proposals == nil {
		c.Proposals = make(map[string]int)
		c.Accepted = make(map[string]int)
		c.Resamples = make(map[string]int)
		c.LastESS = make(map[string]float64)
	}
}

func (c *Counter) Proposal(sampler string, accepted bool) {
	c.init()
	c.Proposals[sampler]++
	if accepted {
		c.Accepted[sampler]++
	}
}

func (c *Counter) EffectiveSampleSize(sampler string, ess float64) {
	c.init()
	c.LastESS[sampler] = ess
}

func (c *Counter) Resampled(sampler string) {
	c.init()
	c.Resamples[sampler]++
}

func (c *Counter) Clusters(k int) {
	c.LastK = k
}

// AcceptanceRate returns the accepted fraction of sampler's proposals.
func (c *Counter) AcceptanceRate(sampler string) float64 {
	if c.Proposals[sampler] == 0 {
		return 0
	}
	return float64(c.Accepted[sampler]) / float64(c.Proposals[sampler])
}

// Tee returns an Observer that forwards to each of os.
func Tee(os ...Observer) Observer {
	return tee(os)
}

type tee []Observer

func (t tee) Proposal(s string, a bool) {
	for _, o := range t {
		o.Proposal(s, a)
	}
}

func (t tee) EffectiveSampleSize(s string, ess float64) {
	for _, o := range t {
		o.EffectiveSampleSize(s, ess)
	}
}

func (t tee) Resampled(s string) {
	for _, o := range t {
		o.Resampled(s)
	}
}

func (t tee) Clusters(k int) {
	for _, o := range t {
		o.Clusters(k)
	}
}
