// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Infer reads newline-separated numbers from stdin and summarizes the
// distribution they came from: directly (describe), as the posterior of
// their mean (mean), as a filtered time series (track), or as a
// mixture of clusters (cluster).
//
// Usage:
//
//	infer [--config run.yaml] [--seed n] [--metrics] command < data
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/aclements/go-moreinfer/diag"
	"github.com/aclements/go-moreinfer/internal/config"
	"github.com/aclements/go-moreinfer/internal/logging"
)

var (
	configPath string
	seed       uint64
	metrics    bool
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "infer",
		Short: "Bayesian summaries of a sample read from stdin",
		Long: `infer reads one number per line from stdin and reports a
Bayesian or sequential estimate built from them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if reg == nil {
				return nil
			}
			mfs, err := reg.Gather()
			if err != nil {
				return err
			}
			return writeMetrics(cmd.ErrOrStderr(), mfs)
		},
	}
)

// Run state shared by the subcommands, built by setup.
var (
	cfg      *config.Config
	logger   *log.Logger
	observer diag.Observer = diag.Nop
	reg      *prometheus.Registry
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML run configuration")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (overrides the configuration)")
	rootCmd.PersistentFlags().BoolVar(&metrics, "metrics", false, "print sampler metrics to stderr in Prometheus text format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides the configuration)")

	rootCmd.AddCommand(describeCmd, meanCmd, trackCmd, clusterCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger, err = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	if metrics {
		reg = prometheus.NewRegistry()
		observer = diag.NewPrometheus(reg)
	}
	logger.WithFields(log.Fields{
		"command": cmd.Name(),
		"seed":    cfg.Seed,
	}).Debug("starting")
	return nil
}

// newRand returns the run's random source.
func newRand() *rand.Rand {
	return rand.New(rand.NewSource(cfg.Seed))
}

func writeMetrics(w io.Writer, mfs []*dto.MetricFamily) error {
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
