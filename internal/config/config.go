// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the YAML run configuration of the infer
// command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is a run configuration. Fields missing from a file keep their
// Default values.
type Config struct {
	// Seed seeds every random source of a run.
	Seed uint64 `yaml:"seed"`

	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn warning error"`

	MCMC     MCMC     `yaml:"mcmc"`
	Particle Particle `yaml:"particle"`
	DPMM     DPMM     `yaml:"dpmm"`
}

// MCMC configures Metropolis-Hastings runs.
type MCMC struct {
	BurnIn              int     `yaml:"burn_in" validate:"gte=0"`
	IterationsPerSample int     `yaml:"iterations_per_sample" validate:"gte=1"`
	Samples             int     `yaml:"samples" validate:"gte=1"`
	Step                float64 `yaml:"step" validate:"gt=0"`
}

// Particle configures particle filters.
type Particle struct {
	NumParticles      int     `yaml:"num_particles" validate:"gte=1"`
	ResampleThreshold float64 `yaml:"resample_threshold" validate:"gte=0,lte=1"`
}

// DPMM configures Dirichlet process mixture runs.
type DPMM struct {
	Alpha          float64 `yaml:"alpha" validate:"gt=0"`
	BurnIn         int     `yaml:"burn_in" validate:"gte=0"`
	SampleInterval int     `yaml:"sample_interval" validate:"gte=1"`
	Samples        int     `yaml:"samples" validate:"gte=1"`
	Workers        int     `yaml:"workers" validate:"gte=0"`

	ResampleAlpha bool    `yaml:"resample_alpha"`
	AlphaShape    float64 `yaml:"alpha_shape" validate:"gt=0"`
	AlphaRate     float64 `yaml:"alpha_rate" validate:"gt=0"`

	// Normal-gamma prior on cluster mean and precision.
	PriorMu    float64 `yaml:"prior_mu"`
	PriorKappa float64 `yaml:"prior_kappa" validate:"gt=0"`
	PriorShape float64 `yaml:"prior_shape" validate:"gt=0"`
	PriorRate  float64 `yaml:"prior_rate" validate:"gt=0"`

	// Consensus is the co-clustering fraction above which two
	// observations are reported together.
	Consensus float64 `yaml:"consensus" validate:"gt=0,lte=1"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Seed:     1,
		LogLevel: "info",
		MCMC: MCMC{
			BurnIn:              1000,
			IterationsPerSample: 10,
			Samples:             1000,
			Step:                1,
		},
		Particle: Particle{
			NumParticles:      1000,
			ResampleThreshold: 0.5,
		},
		DPMM: DPMM{
			Alpha:          1,
			BurnIn:         50,
			SampleInterval: 2,
			Samples:        100,
			AlphaShape:     1,
			AlphaRate:      1,
			PriorKappa:     0.01,
			PriorShape:     2,
			PriorRate:      2,
			Consensus:      0.5,
		},
	}
}

var validate = validator.New()

// Validate checks every field constraint of c.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Load reads the configuration at path over the defaults and validates
// it. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads a YAML configuration from r over the defaults and
// validates it. Unknown keys are an error.
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
