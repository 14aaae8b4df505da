// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mcmc implements batch Monte Carlo approximations of a
// posterior: Metropolis-Hastings, rejection sampling, and importance
// sampling.
//
// Each sampler is driven by a small caller-supplied model, draws all
// randomness from an explicit *rand.Rand, and returns its result as a
// stats.Empirical. Sampler health (acceptance rates, effective sample
// size) is reported to a diag.Observer rather than treated as an
// error.
package mcmc // import "github.com/aclements/go-moreinfer/mcmc"

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/aclements/go-moreinfer/diag"
	"github.com/aclements/go-moreinfer/internal/logging"
	"github.com/aclements/go-moreinfer/stats"
)

// An Updater is the model explored by a Metropolis-Hastings chain over
// parameters of type T given data of type D.
type Updater[T, D any] interface {
	// InitialParameter returns the chain's starting point.
	InitialParameter(rng *rand.Rand) T

	// Propose returns a proposal θ' given the current θ, and the
	// log of the proposal density ratio q(θ|θ')/q(θ'|θ). For a
	// symmetric proposal the ratio is 0.
	Propose(cur T, rng *rand.Rand) (next T, logProposalRatio float64)

	// LogLikelihood returns log p(data | θ).
	LogLikelihood(theta T, data []D) float64
}

// A Prior is implemented by Updaters that have a prior over θ. The
// likelihood is not evaluated at a proposal of zero prior density.
type Prior[T any] interface {
	LogPrior(theta T) float64
}

// Config controls the length and thinning of a chain.
type Config struct {
	// BurnIn is the number of initial iterations discarded.
	BurnIn int

	// IterationsPerSample is the thinning interval: one sample is
	// kept every IterationsPerSample iterations after burn-in.
	IterationsPerSample int

	// Samples is the number of samples to collect.
	Samples int

	Rand     *rand.Rand
	Observer diag.Observer
	Logger   log.FieldLogger
}

func (c *Config) validate() error {
	if c.BurnIn < 0 {
		return fmt.Errorf("burn-in %d: %w", c.BurnIn, stats.ErrNonPositive)
	}
	if c.IterationsPerSample < 1 {
		return fmt.Errorf("iterations per sample %d: %w", c.IterationsPerSample, stats.ErrNonPositive)
	}
	if c.Samples < 1 {
		return fmt.Errorf("sample count %d: %w", c.Samples, stats.ErrNonPositive)
	}
	if c.Rand == nil {
		return errors.New("sampler needs a random source")
	}
	return nil
}

// Chain is the state of a Markov chain.
type Chain[T any] struct {
	// Current is the most recently accepted parameter.
	Current T

	// LogLikelihood and LogPrior are evaluated at Current.
	LogLikelihood float64
	LogPrior      float64

	Iterations int
	Proposals  int
	Accepted   int
}

// AcceptanceRate returns the fraction of proposals accepted so far.
// Rates near 0 or 1 indicate a poorly scaled proposal.
func (c *Chain[T]) AcceptanceRate() float64 {
	if c.Proposals == 0 {
		return 0
	}
	return float64(c.Accepted) / float64(c.Proposals)
}

// MetropolisHastings samples from the posterior of an Updater.
type MetropolisHastings[T, D any] struct {
	updater Updater[T, D]
	prior   Prior[T]
	cfg     Config
	obs     diag.Observer
	log     log.FieldLogger
}

// NewMetropolisHastings returns a sampler for u. If u implements
// Prior[T], its prior enters the acceptance ratio.
func NewMetropolisHastings[T, D any](u Updater[T, D], cfg Config) (*MetropolisHastings[T, D], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := &MetropolisHastings[T, D]{
		updater: u,
		cfg:     cfg,
		obs:     diag.OrNop(cfg.Observer),
		log:     logging.OrDiscard(cfg.Logger),
	}
	m.prior, _ = u.(Prior[T])
	return m, nil
}

// NewChain starts a chain at the updater's initial parameter.
func (m *MetropolisHastings[T, D]) NewChain(data []D) (*Chain[T], error) {
	theta := m.updater.InitialParameter(m.cfg.Rand)
	c := &Chain[T]{Current: theta}
	if m.prior != nil {
		c.LogPrior = m.prior.LogPrior(theta)
		if math.IsInf(c.LogPrior, -1) {
			return nil, fmt.Errorf("initial parameter %v has zero prior density: %w", theta, stats.ErrZeroWeight)
		}
	}
	c.LogLikelihood = m.updater.LogLikelihood(theta, data)
	return c, nil
}

// Step runs one iteration of c and reports whether the proposal was
// accepted.
func (m *MetropolisHastings[T, D]) Step(c *Chain[T], data []D) bool {
	c.Iterations++
	c.Proposals++
	next, logQ := m.updater.Propose(c.Current, m.cfg.Rand)

	// The uniform is drawn before any early rejection so that
	// the random stream does not depend on the model's support.
	logU := math.Log(m.cfg.Rand.Float64())

	var lp float64
	if m.prior != nil {
		lp = m.prior.LogPrior(next)
		if math.IsInf(lp, -1) || math.IsNaN(lp) {
			m.obs.Proposal("metropolis", false)
			return false
		}
	}
	ll := m.updater.LogLikelihood(next, data)
	logR := ll - c.LogLikelihood + lp - c.LogPrior + logQ
	accept := !math.IsNaN(logR) && (logR >= 0 || logU < logR)
	if accept {
		c.Current, c.LogLikelihood, c.LogPrior = next, ll, lp
		c.Accepted++
	}
	m.obs.Proposal("metropolis", accept)
	return accept
}

// Learn runs a chain on data and returns the thinned post-burn-in
// samples with unit weights, along with the final chain state.
func (m *MetropolisHastings[T, D]) Learn(data []D) (*stats.Empirical[T], *Chain[T], error) {
	c, err := m.NewChain(data)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < m.cfg.BurnIn; i++ {
		m.Step(c, data)
	}
	m.log.WithFields(log.Fields{
		"iterations": c.Iterations,
		"acceptance": c.AcceptanceRate(),
	}).Debug("burn-in done")

	samples := &stats.Empirical[T]{
		Values:  make([]T, 0, m.cfg.Samples),
		Weights: make([]float64, 0, m.cfg.Samples),
	}
	for len(samples.Values) < m.cfg.Samples {
		for i := 0; i < m.cfg.IterationsPerSample; i++ {
			m.Step(c, data)
		}
		samples.Add(c.Current, 1)
	}

	if rate := c.AcceptanceRate(); rate < 0.1 || rate > 0.9 {
		m.log.WithFields(log.Fields{
			"acceptance": rate,
			"proposals":  c.Proposals,
		}).Warn("acceptance rate suggests a poorly scaled proposal")
	}
	return samples, c, nil
}
