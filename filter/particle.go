// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

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

// A ParticleUpdater supplies the model of a particle filter over
// states of type T and observations of type O.
type ParticleUpdater[T, O any] interface {
	// InitialParticles draws n particles from the prior.
	InitialParticles(n int, rng *rand.Rand) *stats.Empirical[T]

	// Propagate draws a successor of x from the state transition.
	// It must not modify x in place if T shares memory.
	Propagate(x T, rng *rand.Rand) T

	// LogLikelihood returns log p(obs | x).
	LogLikelihood(x T, obs O) float64
}

// ParticleConfig configures a Particle filter.
type ParticleConfig struct {
	// NumParticles is the size of the particle set.
	NumParticles int

	// ResampleThreshold is the ratio of effective sample size to
	// particle count below which the set is resampled. 1 resamples
	// after every update; 0 never resamples.
	ResampleThreshold float64

	Rand     *rand.Rand
	Observer diag.Observer
	Logger   log.FieldLogger
}

// Particle is a sequential importance resampling particle filter.
// Its beliefs are particle sets whose weights sum to 1.
type Particle[T, O any] struct {
	updater ParticleUpdater[T, O]
	cfg     ParticleConfig
	obs     diag.Observer
	log     log.FieldLogger

	resamples int
	lastESS   float64
}

// NewParticle returns a particle filter driven by u.
func NewParticle[T, O any](u ParticleUpdater[T, O], cfg ParticleConfig) (*Particle[T, O], error) {
	if cfg.NumParticles <= 0 {
		return nil, fmt.Errorf("particle count %d: %w", cfg.NumParticles, stats.ErrNonPositive)
	}
	if cfg.ResampleThreshold < 0 || cfg.ResampleThreshold > 1 {
		return nil, fmt.Errorf("resample threshold %v: %w", cfg.ResampleThreshold, stats.ErrInvalidProbability)
	}
	if cfg.Rand == nil {
		return nil, errors.New("particle filter needs a random source")
	}
	return &Particle[T, O]{
		updater: u,
		cfg:     cfg,
		obs:     diag.OrNop(cfg.Observer),
		log:     logging.OrDiscard(cfg.Logger),
	}, nil
}

// InitialBelief draws a fresh, normalized particle set.
func (pf *Particle[T, O]) InitialBelief() *stats.Empirical[T] {
	b := pf.updater.InitialParticles(pf.cfg.NumParticles, pf.cfg.Rand)
	if err := b.Normalize(); err != nil {
		// Unweighted initial particles are the common case.
		for i := range b.Weights {
			b.Weights[i] = 1 / float64(b.Len())
		}
	}
	return b
}

// Predict moves every particle through the state transition.
func (pf *Particle[T, O]) Predict(b *stats.Empirical[T]) error {
	for i, x := range b.Values {
		b.Values[i] = pf.updater.Propagate(x, pf.cfg.Rand)
	}
	return nil
}

// Update reweights b by the likelihood of obs, normalizes, and
// resamples if the effective sample size has dropped below the
// threshold. It returns stats.ErrZeroWeight, leaving b unchanged, if
// every particle has zero likelihood. A NaN log-likelihood counts as
// zero likelihood.
func (pf *Particle[T, O]) Update(b *stats.Empirical[T], obs O) error {
	n := b.Len()
	if n == 0 {
		return fmt.Errorf("empty particle set: %w", stats.ErrSampleSize)
	}

	// Reweight in log space, shifted by the maximum so the largest
	// weight is exp(0).
	lw := make([]float64, n)
	top := math.Inf(-1)
	for i, x := range b.Values {
		lw[i] = math.Log(b.Weights[i]) + pf.updater.LogLikelihood(x, obs)
		if math.IsNaN(lw[i]) {
			lw[i] = math.Inf(-1)
		}
		if lw[i] > top {
			top = lw[i]
		}
	}
	if math.IsInf(top, -1) {
		return fmt.Errorf("no particle explains the observation: %w", stats.ErrZeroWeight)
	}
	if math.IsInf(top, 1) {
		return fmt.Errorf("infinite likelihood: %w", stats.ErrZeroWeight)
	}
	for i := range lw {
		b.Weights[i] = math.Exp(lw[i] - top)
	}
	if err := b.Normalize(); err != nil {
		return err
	}

	ess := b.EffectiveSampleSize()
	pf.lastESS = ess
	pf.obs.EffectiveSampleSize("particle", ess)
	if pf.cfg.ResampleThreshold >= 1 || ess/float64(n) < pf.cfg.ResampleThreshold {
		b.Resample(pf.cfg.Rand, n)
		if err := b.Normalize(); err != nil {
			return err
		}
		pf.resamples++
		pf.obs.Resampled("particle")
		pf.log.WithFields(log.Fields{"ess": ess, "particles": n}).Debug("resampled particle set")
	}
	return nil
}

// Resamples returns how many times the filter has resampled.
func (pf *Particle[T, O]) Resamples() int {
	return pf.resamples
}

// LastESS returns the effective sample size after the most recent
// reweighting.
func (pf *Particle[T, O]) LastESS() float64 {
	return pf.lastESS
}
