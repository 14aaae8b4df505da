// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/aclements/go-moreinfer/mcmc"
	"github.com/aclements/go-moreinfer/stats"
)

var meanFlags struct {
	priorMu, priorSD, sd float64
}

var meanCmd = &cobra.Command{
	Use:   "mean",
	Short: "Sample the posterior of the mean with Metropolis-Hastings",
	Long: `mean treats the input as draws from a normal distribution with
known standard deviation --sd and samples the posterior of its mean
under a normal prior.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		xs, err := readInput(cmd.InOrStdin())
		if err != nil {
			return err
		}
		return posteriorMean(cmd.OutOrStdout(), xs)
	},
}

func init() {
	f := meanCmd.Flags()
	f.Float64Var(&meanFlags.priorMu, "prior-mu", 0, "mean of the normal prior")
	f.Float64Var(&meanFlags.priorSD, "prior-sd", 100, "standard deviation of the normal prior")
	f.Float64Var(&meanFlags.sd, "sd", 1, "known standard deviation of the observations")
}

func posteriorMean(w io.Writer, xs []float64) error {
	sd := meanFlags.sd
	param := &stats.BayesianParameter{
		Name: "mean",
		Conditional: func(theta float64) distuv.LogProber {
			return distuv.Normal{Mu: theta, Sigma: sd}
		},
		Prior: stats.NormalDist{Mu: meanFlags.priorMu, Sigma: meanFlags.priorSD},
	}
	if err := param.Validate(); err != nil {
		return err
	}

	mh, err := mcmc.NewMetropolisHastings[float64, float64](
		&mcmc.RandomWalk{Param: param, Step: cfg.MCMC.Step},
		mcmc.Config{
			BurnIn:              cfg.MCMC.BurnIn,
			IterationsPerSample: cfg.MCMC.IterationsPerSample,
			Samples:             cfg.MCMC.Samples,
			Rand:                newRand(),
			Observer:            observer,
			Logger:              logger,
		})
	if err != nil {
		return err
	}
	samples, chain, err := mh.Learn(xs)
	if err != nil {
		return err
	}

	post := samples.Sample(func(x float64) float64 { return x })
	lo, hi := post.CredibleInterval(0.95)
	fmt.Fprintf(w, "posterior mean %g\n", post.Mean())
	fmt.Fprintf(w, "posterior stddev %g\n", post.StdDev())
	fmt.Fprintf(w, "95%% credible interval [%g, %g]\n", lo, hi)
	fmt.Fprintf(w, "acceptance %.3f\n", chain.AcceptanceRate())
	return nil
}
