// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"fmt"
	"github.com/orbs-network/extendable-timeout/synchronization"
	"github.com/orbs-network/scribe/log"
	"sort"
	"sync"
	"time"
)

const MetricsReporterName = "Timeout.MetricsReporter"

type Factory interface {
	NewLatency(name string, maxDuration time.Duration) *Histogram
	NewGauge(name string) *Gauge
	NewRate(name string) *Rate
}

type Registry interface {
	Factory
	String() string
	ExportAll() map[string]exportedMetric
	ReportEvery(ctx context.Context, interval time.Duration, logger log.Logger) *synchronization.PeriodicalTrigger
}

type exportedMetric interface {
	LogRow() []*log.Field
}

type metric interface {
	fmt.Stringer
	Name() string
	Export() exportedMetric
}

type namedMetric struct {
	name string
}

func (m *namedMetric) Name() string {
	return m.name
}

func NewRegistry() Registry {
	return &inMemoryRegistry{}
}

type inMemoryRegistry struct {
	mu struct {
		sync.Mutex
		metrics []metric
	}
}

func (r *inMemoryRegistry) register(m metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mu.metrics = append(r.mu.metrics, m)
}

func (r *inMemoryRegistry) NewRate(name string) *Rate {
	m := newRate(name)
	r.register(m)
	return m
}

func (r *inMemoryRegistry) NewGauge(name string) *Gauge {
	g := &Gauge{namedMetric: namedMetric{name: name}}
	r.register(g)
	return g
}

func (r *inMemoryRegistry) NewLatency(name string, maxDuration time.Duration) *Histogram {
	h := newHistogram(name, maxDuration.Nanoseconds())
	r.register(h)
	return h
}

func (r *inMemoryRegistry) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s string
	for _, m := range r.mu.metrics {
		s += m.String()
	}

	return s
}

func (r *inMemoryRegistry) ExportAll() map[string]exportedMetric {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make(map[string]exportedMetric)
	for _, m := range r.mu.metrics {
		all[m.Name()] = m.Export()
	}

	return all
}

func (r *inMemoryRegistry) report(logger log.Logger) {
	all := r.ExportAll()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if logRow := all[name].LogRow(); logRow != nil {
			logger.Metric(logRow...)
		}
	}
}

// ReportEvery logs all metrics each interval and once more when the returned trigger is stopped
func (r *inMemoryRegistry) ReportEvery(ctx context.Context, interval time.Duration, logger log.Logger) *synchronization.PeriodicalTrigger {
	return synchronization.NewPeriodicalTrigger(ctx, MetricsReporterName, interval, logger, func() {
		r.report(logger)

		// We only rotate histograms because there is the only type of metric that we're currently rotating
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, m := range r.mu.metrics {
			if h, ok := m.(*Histogram); ok {
				h.Rotate()
			}
		}
	}, func() {
		r.report(logger)
	})
}
