// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-moreinfer/filter"
	"github.com/aclements/go-moreinfer/stats"
)

var trackFlags struct {
	method       string
	processNoise float64
	obsNoise     float64
}

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Filter the input as a noisy random walk",
	Long: `track treats the input as a time series of noisy observations of
a level that moves as a Gaussian random walk, and prints the filtered
estimate of the level after each observation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		xs, err := readInput(cmd.InOrStdin())
		if err != nil {
			return err
		}
		switch trackFlags.method {
		case "kalman":
			return trackKalman(cmd.OutOrStdout(), xs)
		case "particle":
			return trackParticle(cmd.OutOrStdout(), xs)
		}
		return fmt.Errorf("unknown method %q", trackFlags.method)
	},
}

func init() {
	f := trackCmd.Flags()
	f.StringVar(&trackFlags.method, "method", "kalman", "filter to use: kalman or particle")
	f.Float64Var(&trackFlags.processNoise, "process-noise", 1, "variance of one step of the level")
	f.Float64Var(&trackFlags.obsNoise, "obs-noise", 1, "variance of an observation about the level")
}

func trackKalman(w io.Writer, xs []float64) error {
	model := filter.LinearModel{
		A: mat.NewDense(1, 1, []float64{1}),
		C: mat.NewDense(1, 1, []float64{1}),
		Q: mat.NewSymDense(1, []float64{trackFlags.processNoise}),
		R: mat.NewSymDense(1, []float64{trackFlags.obsNoise}),
	}
	initial, err := stats.NewGaussian([]float64{xs[0]}, mat.NewSymDense(1, []float64{trackFlags.obsNoise}))
	if err != nil {
		return err
	}
	kf, err := filter.NewKalman(model, initial, logger)
	if err != nil {
		return err
	}
	b := kf.InitialBelief()
	for i, x := range xs {
		if err := kf.Predict(b); err != nil {
			return err
		}
		if err := kf.Update(b, []float64{x}); err != nil {
			return fmt.Errorf("observation %d: %w", i, err)
		}
		fmt.Fprintf(w, "%d %g %g %g\n", i, x, b.Mu.AtVec(0), math.Sqrt(b.Sigma.At(0, 0)))
	}
	return nil
}

// levelWalk is the particle model of a random-walk level observed
// with Gaussian noise.
type levelWalk struct {
	start, step, noise float64
}

func (m levelWalk) InitialParticles(n int, rng *rand.Rand) *stats.Empirical[float64] {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = m.start + m.noise*rng.NormFloat64()
	}
	return stats.UniformEmpirical(xs)
}

func (m levelWalk) Propagate(x float64, rng *rand.Rand) float64 {
	return x + m.step*rng.NormFloat64()
}

func (m levelWalk) LogLikelihood(x, obs float64) float64 {
	return distuv.Normal{Mu: x, Sigma: m.noise}.LogProb(obs)
}

func trackParticle(w io.Writer, xs []float64) error {
	walk := levelWalk{
		start: xs[0],
		step:  math.Sqrt(trackFlags.processNoise),
		noise: math.Sqrt(trackFlags.obsNoise),
	}
	pf, err := filter.NewParticle[float64, float64](walk, filter.ParticleConfig{
		NumParticles:      cfg.Particle.NumParticles,
		ResampleThreshold: cfg.Particle.ResampleThreshold,
		Rand:              newRand(),
		Observer:          observer,
		Logger:            logger,
	})
	if err != nil {
		return err
	}
	b := pf.InitialBelief()
	id := func(x float64) float64 { return x }
	for i, x := range xs {
		if err := pf.Predict(b); err != nil {
			return err
		}
		if err := pf.Update(b, x); err != nil {
			return fmt.Errorf("observation %d: %w", i, err)
		}
		s := b.Sample(id)
		fmt.Fprintf(w, "%d %g %g %g\n", i, x, s.Mean(), s.StdDev())
	}
	logger.WithField("resamples", pf.Resamples()).Debug("particle filter done")
	return nil
}
