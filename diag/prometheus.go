// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moreinfer"

// Prometheus is an Observer that exports sampler diagnostics as
// Prometheus metrics.
type Prometheus struct {
	proposals *prometheus.CounterVec
	ess       *prometheus.GaugeVec
	resamples *prometheus.CounterVec
	clusters  prometheus.Gauge
}

// NewPrometheus registers the diagnostics metrics with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		// Labels: sampler, result ("accepted", "rejected")
		proposals: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "proposals_total",
			Help:      "Proposals made by a sampler, by outcome.",
		}, []string{"sampler", "result"}),
		ess: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "effective_sample_size",
			Help:      "Most recent effective sample size of a weighted sample.",
		}, []string{"sampler"}),
		resamples: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sampler",
			Name:      "resamples_total",
			Help:      "Resampling steps of a particle set.",
		}, []string{"sampler"}),
		clusters: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dpmm",
			Name:      "clusters",
			Help:      "Number of clusters in the current mixture state.",
		}),
	}
}

func (p *Prometheus) Proposal(sampler string, accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	p.proposals.WithLabelValues(sampler, result).Inc()
}

func (p *Prometheus) EffectiveSampleSize(sampler string, ess float64) {
	p.ess.WithLabelValues(sampler).Set(ess)
}

func (p *Prometheus) Resampled(sampler string) {
	p.resamples.WithLabelValues(sampler).Inc()
}

func (p *Prometheus) Clusters(k int) {
	p.clusters.Set(float64(k))
}
