// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
seed: 42
log_level: debug
mcmc:
  samples: 200
dpmm:
  workers: 4
  resample_alpha: true
`))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 200, cfg.MCMC.Samples)
	assert.Equal(t, Default().MCMC.BurnIn, cfg.MCMC.BurnIn)
	assert.Equal(t, 4, cfg.DPMM.Workers)
	assert.True(t, cfg.DPMM.ResampleAlpha)
	assert.Equal(t, Default().DPMM.Alpha, cfg.DPMM.Alpha)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseInvalid(t *testing.T) {
	for _, doc := range []string{
		"mcmc:\n  step: 0\n",
		"particle:\n  resample_threshold: 1.5\n",
		"dpmm:\n  alpha: -1\n",
		"log_level: loud\n",
	} {
		_, err := Parse(strings.NewReader(doc))
		var verr validator.ValidationErrors
		assert.True(t, errors.As(err, &verr), "%q: %v", doc, err)
	}

	_, err := Parse(strings.NewReader("mcmc:\n  stpe: 1\n"))
	assert.ErrorContains(t, err, "stpe")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("particle:\n  num_particles: 0\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
