// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package timeout

import (
	"context"
	"github.com/orbs-network/extendable-timeout/instrumentation/metric"
	"github.com/orbs-network/extendable-timeout/synchronization"
	"github.com/orbs-network/extendable-timeout/test"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type eventLoopConfigForTests struct {
	initialUnits uint32
	unit         time.Duration
}

func (c *eventLoopConfigForTests) TimeoutInitialDuration() time.Duration {
	return time.Duration(c.initialUnits) * c.unit
}

func (c *eventLoopConfigForTests) TimeoutTimeUnit() time.Duration {
	return c.unit
}

type eventLoopHarness struct {
	t             *testing.T
	config        *eventLoopConfigForTests
	conduit       *ExtensionConduit
	sender        *ExtensionSender
	metricFactory metric.Registry
	logger        log.Logger
	createTimer   func(d time.Duration) *synchronization.DeadlineTimer
	timer         *synchronization.DeadlineTimer // set once the loop armed it
}

type runResult struct {
	outcome *LoopOutcome
	err     error
}

func newEventLoopHarness(t *testing.T, logger log.Logger) *eventLoopHarness {
	conduit, err := NewExtensionConduit(100)
	require.NoError(t, err)
	sender, err := conduit.NewSender()
	require.NoError(t, err)

	h := &eventLoopHarness{
		t:             t,
		config:        &eventLoopConfigForTests{initialUnits: 5, unit: time.Millisecond},
		conduit:       conduit,
		sender:        sender,
		metricFactory: metric.NewRegistry(),
		logger:        logger,
	}
	h.createTimer = func(d time.Duration) *synchronization.DeadlineTimer {
		h.timer = synchronization.NewDeadlineTimer(d)
		return h.timer
	}
	return h
}

func newEventLoopHarnessWithManualTimer(t *testing.T, logger log.Logger) *eventLoopHarness {
	h := newEventLoopHarness(t, logger)
	h.createTimer = func(d time.Duration) *synchronization.DeadlineTimer {
		h.timer = synchronization.NewDeadlineTimerWithManualTick(d)
		return h.timer
	}
	return h
}

func (h *eventLoopHarness) withInitialUnits(units uint32) *eventLoopHarness {
	h.config.initialUnits = units
	return h
}

func (h *eventLoopHarness) withUnit(unit time.Duration) *eventLoopHarness {
	h.config.unit = unit
	return h
}

func (h *eventLoopHarness) createLoop() *EventLoop {
	return NewEventLoopWithTimer(h.config, h.conduit, h.logger, h.metricFactory, h.createTimer)
}

func (h *eventLoopHarness) requestExtensions(ctx context.Context, amounts ...uint64) {
	for _, amount := range amounts {
		require.NoError(h.t, h.sender.RequestExtension(ctx, amount))
	}
}

func (h *eventLoopHarness) units(n uint64) time.Duration {
	return time.Duration(n) * h.config.unit
}

func (h *eventLoopHarness) runInBackground(ctx context.Context, loop *EventLoop) chan runResult {
	done := make(chan runResult, 1)
	go func() {
		outcome, err := loop.Run(ctx)
		done <- runResult{outcome, err}
	}()
	return done
}

func (h *eventLoopHarness) waitForResult(done chan runResult) runResult {
	select {
	case result := <-done:
		return result
	case <-time.After(test.EventuallyTimeout):
		h.t.Fatal("event loop did not return")
		return runResult{}
	}
}
