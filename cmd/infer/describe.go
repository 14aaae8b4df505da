// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aclements/go-moreinfer/stats"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print summary statistics and a density estimate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		xs, err := readInput(cmd.InOrStdin())
		if err != nil {
			return err
		}
		return describe(cmd.OutOrStdout(), xs)
	},
}

func describe(w io.Writer, xs []float64) error {
	s := stats.Sample{Xs: xs}
	s.Sort()

	fmt.Fprintf(w, "N %d\n", len(s.Xs))
	fmt.Fprintf(w, "mean %g\n", s.Mean())
	fmt.Fprintf(w, "stddev %g\n", s.StdDev())
	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		fmt.Fprintf(w, "Q%g %g\n", p*100, s.Quantile(p))
	}
	lo, hi := stats.QuantileCI(len(s.Xs), 0.5, 0.95).FromSample(s)
	fmt.Fprintf(w, "median 95%% CI [%g, %g]\n", lo, hi)

	if len(s.Xs) < 2 || s.StdDev() == 0 {
		return nil
	}
	fmt.Fprintln(w)
	kde := stats.KDE{}.From(s)
	return FprintPDF(w, kde)
}
