// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dpmm

import (
	"errors"
	"fmt"
	"math"
	"slices"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/aclements/go-moreinfer/diag"
	"github.com/aclements/go-moreinfer/internal/logging"
	"github.com/aclements/go-moreinfer/stats"
)

// Config controls a Gibbs sampler run.
type Config struct {
	// Alpha is the concentration parameter, or its initial value
	// if ResampleAlpha is set. Larger values favor more clusters.
	Alpha float64

	// BurnIn is the number of sweeps discarded before the first
	// sample.
	BurnIn int

	// SampleInterval is the number of sweeps per recorded sample.
	SampleInterval int

	// Samples is the number of partitions to record.
	Samples int

	// Workers is the number of goroutines scoring clusters within
	// a sweep. 0 and 1 both mean serial scoring. Results do not
	// depend on Workers.
	Workers int

	// ResampleAlpha enables a draw of Alpha from its posterior
	// after every sweep, under the prior AlphaPrior.
	ResampleAlpha bool
	AlphaPrior    AlphaPrior

	Rand     *rand.Rand
	Observer diag.Observer
	Logger   log.FieldLogger
}

func (c *Config) validate() error {
	if !(c.Alpha > 0) {
		return fmt.Errorf("concentration %v: %w", c.Alpha, stats.ErrNonPositive)
	}
	if c.BurnIn < 0 {
		return fmt.Errorf("burn-in %d: %w", c.BurnIn, stats.ErrNonPositive)
	}
	if c.SampleInterval < 1 {
		return fmt.Errorf("sample interval %d: %w", c.SampleInterval, stats.ErrNonPositive)
	}
	if c.Samples < 1 {
		return fmt.Errorf("sample count %d: %w", c.Samples, stats.ErrNonPositive)
	}
	if c.Workers < 0 {
		return fmt.Errorf("worker count %d: %w", c.Workers, stats.ErrNonPositive)
	}
	if c.ResampleAlpha {
		if err := c.AlphaPrior.validate(); err != nil {
			return err
		}
	}
	if c.Rand == nil {
		return errors.New("sampler needs a random source")
	}
	return nil
}

// Sampler is a collapsed Gibbs sampler for a Dirichlet process
// mixture.
type Sampler[O any] struct {
	model Model[O]
	data  []O
	cfg   Config
	obs   diag.Observer
	log   log.FieldLogger

	// assign[i] indexes the cluster of data[i] in clusters, or is
	// -1 while data[i] is unassigned.
	assign   []int
	clusters []*Cluster[O]
	alpha    float64
	sweeps   int

	// empty is the prior, scored for the new cluster option.
	empty  ClusterPosterior[O]
	scores []float64
	labels []int
}

// NewSampler returns a sampler over data. The initial partition seats
// the observations one at a time by the same rule a sweep uses.
func NewSampler[O any](model Model[O], data []O, cfg Config) (*Sampler[O], error) {
	if len(data) == 0 {
		return nil, ErrNoObservations
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Sampler[O]{
		model:  model,
		data:   data,
		cfg:    cfg,
		obs:    diag.OrNop(cfg.Observer),
		log:    logging.OrDiscard(cfg.Logger),
		assign: make([]int, len(data)),
		alpha:  cfg.Alpha,
		empty:  model.NewCluster(),
	}
	for i := range s.assign {
		s.assign[i] = -1
	}
	for i := range data {
		if err := s.reassign(i); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Alpha returns the current concentration parameter.
func (s *Sampler[O]) Alpha() float64 {
	return s.alpha
}

// Clusters returns the current partition. Clusters are ordered by
// their smallest member.
func (s *Sampler[O]) Clusters() []*Cluster[O] {
	out := make([]*Cluster[O], 0, len(s.clusters))
	seen := make(map[int]bool, len(s.clusters))
	for _, c := range s.assign {
		if !seen[c] {
			seen[c] = true
			out = append(out, s.clusters[c])
		}
	}
	return out
}

// Sweep reassigns every observation once and, if configured,
// resamples the concentration parameter.
func (s *Sampler[O]) Sweep() error {
	for i := range s.data {
		if err := s.reassign(i); err != nil {
			return err
		}
	}
	if s.cfg.ResampleAlpha {
		alpha, err := s.cfg.AlphaPrior.posteriorDraw(s.alpha, len(s.clusters), len(s.data), s.cfg.Rand)
		if err != nil {
			return err
		}
		s.alpha = alpha
	}
	s.sweeps++
	s.obs.Clusters(len(s.clusters))
	return nil
}

func (s *Sampler[O]) reassign(i int) error {
	x := s.data[i]
	if c := s.assign[i]; c >= 0 {
		cl := s.clusters[c]
		cl.Posterior.Remove(x)
		j, _ := slices.BinarySearch(cl.Members, i)
		cl.Members = slices.Delete(cl.Members, j, j+1)
		s.assign[i] = -1
		if cl.Posterior.Len() == 0 {
			s.drop(c)
		}
	}

	j, err := s.choose(i, x)
	if err != nil {
		return err
	}
	if j == len(s.clusters) {
		s.clusters = append(s.clusters, &Cluster[O]{Posterior: s.model.NewCluster()})
	}
	cl := s.clusters[j]
	cl.Posterior.Add(x)
	k, _ := slices.BinarySearch(cl.Members, i)
	cl.Members = slices.Insert(cl.Members, k, i)
	s.assign[i] = j
	return nil
}

// drop destroys empty cluster c.
func (s *Sampler[O]) drop(c int) {
	s.clusters = slices.Delete(s.clusters, c, c+1)
	for i, a := range s.assign {
		if a > c {
			s.assign[i] = a - 1
		}
	}
}

// choose draws the cluster for observation i, with len(s.clusters)
// standing for a new cluster.
func (s *Sampler[O]) choose(i int, x O) (int, error) {
	k := len(s.clusters)
	s.scores = slices.Grow(s.scores[:0], k+1)[:k+1]
	for len(s.labels) < k+1 {
		s.labels = append(s.labels, len(s.labels))
	}

	if err := s.score(x); err != nil {
		return 0, fmt.Errorf("observation %d: %w", i, err)
	}

	// Exponentiate relative to the best score.
	top := math.Inf(-1)
	for _, sc := range s.scores {
		top = math.Max(top, sc)
	}
	if math.IsInf(top, -1) {
		return 0, fmt.Errorf("observation %d has zero density under every cluster: %w", i, stats.ErrZeroWeight)
	}
	for j, sc := range s.scores {
		s.scores[j] = math.Exp(sc - top)
	}
	choices := stats.Empirical[int]{Values: s.labels[:k+1], Weights: s.scores}
	return choices.Draw(s.cfg.Rand), nil
}

// score fills s.scores with the unnormalized log probability of x
// joining each cluster and, in the last slot, a new one.
func (s *Sampler[O]) score(x O) error {
	k := len(s.clusters)
	one := func(j int) error {
		var sc float64
		if j == k {
			sc = math.Log(s.alpha) + s.empty.LogPredictive(x)
		} else {
			c := s.clusters[j]
			sc = math.Log(float64(c.Posterior.Len())) + c.Posterior.LogPredictive(x)
		}
		if math.IsNaN(sc) {
			return fmt.Errorf("cluster %d: log predictive is NaN", j)
		}
		s.scores[j] = sc
		return nil
	}

	workers := s.cfg.Workers
	if workers <= 1 || k == 0 {
		for j := 0; j <= k; j++ {
			if err := one(j); err != nil {
				return err
			}
		}
		return nil
	}

	// Each worker writes a disjoint range of s.scores and reads
	// only its own clusters.
	var g errgroup.Group
	g.SetLimit(workers)
	chunk := (k + workers) / workers
	for lo := 0; lo <= k; lo += chunk {
		hi := min(lo+chunk, k+1)
		g.Go(func() error {
			for j := lo; j < hi; j++ {
				if err := one(j); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Run performs the burn-in and sampling sweeps and returns the
// recorded partitions.
func (s *Sampler[O]) Run() (*Result, error) {
	for i := 0; i < s.cfg.BurnIn; i++ {
		if err := s.Sweep(); err != nil {
			return nil, fmt.Errorf("burn-in sweep %d: %w", i, err)
		}
	}
	s.log.WithFields(log.Fields{
		"sweeps":   s.sweeps,
		"clusters": len(s.clusters),
		"alpha":    s.alpha,
	}).Debug("burn-in done")

	res := &Result{N: len(s.data)}
	for len(res.Samples) < s.cfg.Samples {
		for i := 0; i < s.cfg.SampleInterval; i++ {
			if err := s.Sweep(); err != nil {
				return nil, fmt.Errorf("sweep %d: %w", s.sweeps, err)
			}
		}
		res.Samples = append(res.Samples, s.snapshot())
		s.log.WithFields(log.Fields{
			"sample":   len(res.Samples),
			"clusters": len(s.clusters),
		}).Debug("recorded partition")
	}
	return res, nil
}

// snapshot records the current partition with clusters labeled in
// order of their smallest member.
func (s *Sampler[O]) snapshot() Partition {
	p := Partition{
		Assignments: make([]int, len(s.data)),
		K:           len(s.clusters),
		Alpha:       s.alpha,
	}
	relabel := make(map[int]int, len(s.clusters))
	for i, c := range s.assign {
		l, ok := relabel[c]
		if !ok {
			l = len(relabel)
			relabel[c] = l
		}
		p.Assignments[i] = l
	}

	// Accumulate each cluster's marginal likelihood by the chain
	// rule over its members.
	for _, c := range s.Clusters() {
		post := s.model.NewCluster()
		for _, m := range c.Members {
			p.LogLikelihood += post.LogPredictive(s.data[m])
			post.Add(s.data[m])
		}
	}
	p.LogPrior = logEPPF(s.alpha, s.Clusters())
	return p
}

// logEPPF is the log probability of a partition under the Chinese
// restaurant process with concentration alpha.
func logEPPF[O any](alpha float64, clusters []*Cluster[O]) float64 {
	n := 0
	lp := float64(len(clusters)) * math.Log(alpha)
	for _, c := range clusters {
		lg, _ := math.Lgamma(float64(len(c.Members)))
		lp += lg
		n += len(c.Members)
	}
	la, _ := math.Lgamma(alpha)
	lan, _ := math.Lgamma(alpha + float64(n))
	return lp + la - lan
}
