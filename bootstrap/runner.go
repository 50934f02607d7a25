// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/extendable-timeout/config"
	"github.com/orbs-network/extendable-timeout/instrumentation/logfields"
	"github.com/orbs-network/extendable-timeout/instrumentation/metric"
	"github.com/orbs-network/extendable-timeout/services/timeout"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

// Runner wires one event loop with its demo producer, metric reporting and outcome reporter
type Runner struct {
	govnr.TreeSupervisor
	config   config.TimeoutConfig
	logger   log.Logger
	reporter OutcomeReporter
	metrics  metric.Registry
	loop     *timeout.EventLoop
	producer *DemoProducer
}

// NewRunner arms the timer, the countdown is already running when it returns
func NewRunner(cfg config.TimeoutConfig, logger log.Logger, reporter OutcomeReporter) (*Runner, error) {
	conduit, err := timeout.NewExtensionConduit(int(cfg.TimeoutExtensionConduitCapacity()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create extension conduit")
	}

	// registered before the loop starts so the conduit cannot be observed closed before the producer ran
	sender, err := conduit.NewSender()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create extension sender")
	}

	registry := metric.NewRegistry()

	return &Runner{
		config:   cfg,
		logger:   logger,
		reporter: reporter,
		metrics:  registry,
		producer: NewDemoProducer(sender, cfg.DemoExtensions(), cfg.DemoProducerInterval(), logger),
		loop:     timeout.NewEventLoop(cfg, conduit, logger, registry),
	}, nil
}

func (r *Runner) Metrics() metric.Registry {
	return r.metrics
}

// Run blocks until the timer fired and its outcome was reported, or until ctx ends
func (r *Runner) Run(ctx context.Context) (*timeout.LoopOutcome, error) {
	metricsReporter := r.metrics.ReportEvery(ctx, r.config.MetricsReportInterval(), r.logger)
	r.Supervise(metricsReporter)
	defer metricsReporter.Stop()

	producerCtx, cancelProducer := context.WithCancel(ctx)
	producerDone := make(chan struct{})
	govnr.Once(logfields.GovnrErrorer(r.logger), func() {
		defer close(producerDone)
		if err := r.producer.Produce(producerCtx); err != nil {
			if producerCtx.Err() != nil {
				r.logger.Info("demo producer stopped", log.Error(err))
			} else {
				r.logger.Error("demo producer failed", log.Error(err))
			}
		}
	})
	defer func() {
		cancelProducer() // unblocks a producer waiting on a full conduit after the loop fired
		<-producerDone
	}()

	outcome, err := r.loop.Run(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "timeout event loop did not complete")
	}

	if err := r.reporter.ReportOutcome(outcome); err != nil {
		return outcome, errors.Wrap(err, "failed to report outcome")
	}

	return outcome, nil
}
