// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aclements/go-moreinfer/dpmm"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster the input with a Dirichlet process mixture",
	Long: `cluster fits a Dirichlet process mixture of normals to the input
by Gibbs sampling and prints the posterior of the number of clusters
and the groups of values that usually share a cluster.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		xs, err := readInput(cmd.InOrStdin())
		if err != nil {
			return err
		}
		return cluster(cmd.OutOrStdout(), xs)
	},
}

func cluster(w io.Writer, xs []float64) error {
	c := cfg.DPMM
	prior := dpmm.NormalGamma{Mu: c.PriorMu, Kappa: c.PriorKappa, Alpha: c.PriorShape, Beta: c.PriorRate}
	if err := prior.Validate(); err != nil {
		return err
	}
	s, err := dpmm.NewSampler[float64](prior, xs, dpmm.Config{
		Alpha:          c.Alpha,
		BurnIn:         c.BurnIn,
		SampleInterval: c.SampleInterval,
		Samples:        c.Samples,
		Workers:        c.Workers,
		ResampleAlpha:  c.ResampleAlpha,
		AlphaPrior:     dpmm.AlphaPrior{Shape: c.AlphaShape, Rate: c.AlphaRate},
		Rand:           newRand(),
		Observer:       observer,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	res, err := s.Run()
	if err != nil {
		return err
	}

	counts := res.ClusterCounts()
	ks := counts.Keys()
	slices.Sort(ks)
	fmt.Fprintf(w, "clusters %d\n", res.ModalClusterCount())
	for _, k := range ks {
		fmt.Fprintf(w, "P(K=%d) %.3f\n", k, counts.Fraction(k))
	}

	groups, err := res.Consensus(c.Consensus)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for i, g := range groups {
		vals := make([]string, len(g))
		for j, node := range g {
			vals[j] = fmt.Sprint(xs[node])
		}
		fmt.Fprintf(w, "group %d: %s\n", i, strings.Join(vals, " "))
	}
	return nil
}
