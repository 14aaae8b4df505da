// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-moreinfer/diag"
)

// run executes the command line args with stdin as input and returns
// stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	configPath, logLevel, metrics = "", "", false
	reg, observer = nil, diag.Nop

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func lines(xs []float64) string {
	var b strings.Builder
	for _, x := range xs {
		fmt.Fprintln(&b, x)
	}
	return b.String()
}

// field returns the float following prefix on the line that starts with
// prefix.
func field(t *testing.T, out, prefix string) float64 {
	t.Helper()
	for _, l := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(l, prefix); ok {
			v, err := strconv.ParseFloat(strings.Fields(rest)[0], 64)
			require.NoError(t, err, l)
			return v
		}
	}
	t.Fatalf("no %q line in output:\n%s", prefix, out)
	return 0
}

func TestReadInput(t *testing.T) {
	xs, err := readInput(strings.NewReader("1\n\n 2.5 \n-3\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3}, xs)

	_, err = readInput(strings.NewReader("1\nx\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = readInput(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, errNoInput)
}

func TestDescribe(t *testing.T) {
	out, _, err := run(t, "5\n1\n4\n2\n3\n", "describe")
	require.NoError(t, err)
	assert.Contains(t, out, "N 5\n")
	assert.Equal(t, 3.0, field(t, out, "mean "))
	assert.Equal(t, 1.0, field(t, out, "Q0 "))
	assert.Equal(t, 5.0, field(t, out, "Q100 "))
	assert.Contains(t, out, "*")
}

func TestMean(t *testing.T) {
	xs := make([]float64, 100)
	for i := range xs {
		xs[i] = 5 + float64(i%5-2)*0.5
	}
	out, errOut, err := run(t, lines(xs), "--metrics", "mean", "--sd", "1")
	require.NoError(t, err)
	assert.InDelta(t, 5, field(t, out, "posterior mean "), 0.3)
	assert.InDelta(t, 0.1, field(t, out, "posterior stddev "), 0.05)
	acc := field(t, out, "acceptance ")
	assert.True(t, acc > 0 && acc < 1, "acceptance %v", acc)
	assert.Contains(t, errOut, "moreinfer_sampler_proposals_total")
}

func TestTrack(t *testing.T) {
	xs := make([]float64, 20)
	for i := range xs {
		xs[i] = 10
	}
	out, _, err := run(t, lines(xs), "track", "--method", "kalman")
	require.NoError(t, err)
	rows := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, rows, 20)
	assert.Equal(t, []string{"19", "10", "10"}, strings.Fields(rows[19])[:3])

	out, _, err = run(t, lines(xs), "track", "--method", "particle")
	require.NoError(t, err)
	rows = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, rows, 20)
	last, err := strconv.ParseFloat(strings.Fields(rows[19])[2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 10, last, 0.5)

	_, _, err = run(t, lines(xs), "track", "--method", "bogus")
	assert.ErrorContains(t, err, "bogus")
}

func TestCluster(t *testing.T) {
	var xs []float64
	for i := 0; i < 10; i++ {
		xs = append(xs, -20+0.1*float64(i%5))
	}
	for i := 0; i < 10; i++ {
		xs = append(xs, 20+0.1*float64(i%5))
	}
	out, _, err := run(t, lines(xs), "cluster")
	require.NoError(t, err)
	assert.Equal(t, 2.0, field(t, out, "clusters "))
	assert.Equal(t, 2, strings.Count(out, "group "))
	assert.Contains(t, out, "group 0: -20 ")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mcmc:\n  samples: 0\n"), 0o644))
	_, _, err := run(t, "1\n", "--config", path, "mean")
	assert.ErrorContains(t, err, path)

	require.NoError(t, os.WriteFile(path, []byte("seed: 7\nlog_level: debug\n"), 0o644))
	_, errOut, err := run(t, "1\n2\n", "--config", path, "describe")
	require.NoError(t, err)
	assert.Contains(t, errOut, "seed=7")
	assert.Equal(t, uint64(7), cfg.Seed)
}
