// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package timeout

import (
	"github.com/orbs-network/extendable-timeout/instrumentation/metric"
	"github.com/orbs-network/extendable-timeout/synchronization"
	"github.com/orbs-network/scribe/log"
	"time"
)

type stateFactory struct {
	config      eventLoopConfig
	createTimer func(d time.Duration) *synchronization.DeadlineTimer
	logger      log.Logger
}

func NewStateFactory(config eventLoopConfig, logger log.Logger) *stateFactory {
	return NewStateFactoryWithTimer(config, nil, logger)
}

func NewStateFactoryWithTimer(config eventLoopConfig, createTimer func(d time.Duration) *synchronization.DeadlineTimer, logger log.Logger) *stateFactory {
	f := &stateFactory{
		config: config,
		logger: logger,
	}

	if createTimer == nil {
		f.createTimer = synchronization.NewDeadlineTimer
	} else {
		f.createTimer = createTimer
	}

	return f
}

// CreateInitState arms the countdown immediately
func (f *stateFactory) CreateInitState() timeoutState {
	return &initState{
		timer: f.createTimer(f.config.TimeoutInitialDuration()),
	}
}

type eventLoopMetrics struct {
	extensions        *metric.Gauge
	droppedExtensions *metric.Gauge
	ignoredExtensions *metric.Gauge
	extensionsRate    *metric.Rate
	timeToFire        *metric.Histogram
}

func newEventLoopMetrics(factory metric.Factory) *eventLoopMetrics {
	return &eventLoopMetrics{
		extensions:        factory.NewGauge("Timeout.EventLoop.Extensions.Count"),
		droppedExtensions: factory.NewGauge("Timeout.EventLoop.DroppedExtensions.Count"),
		ignoredExtensions: factory.NewGauge("Timeout.EventLoop.IgnoredExtensions.Count"),
		extensionsRate:    factory.NewRate("Timeout.EventLoop.Extensions.PerSecond"),
		timeToFire:        factory.NewLatency("Timeout.EventLoop.TimeToFire.Nanos", 24*30*time.Hour),
	}
}
