// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package timeout

import (
	"context"
	"github.com/orbs-network/extendable-timeout/instrumentation/logfields"
	"github.com/orbs-network/extendable-timeout/instrumentation/metric"
	"github.com/orbs-network/extendable-timeout/synchronization"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"math"
	"sync"
	"time"
)

var LogTag = log.String("flow", "timeout-loop")

var ErrAlreadyFired = errors.New("event loop already fired")
var ErrTornDown = errors.New("event loop was torn down before firing")

type eventLoopConfig interface {
	TimeoutInitialDuration() time.Duration
	TimeoutTimeUnit() time.Duration
}

// EventLoop races a DeadlineTimer against the extension conduit until the timer fires.
// Run must be called from a single goroutine; Status may be read from anywhere.
type EventLoop struct {
	logger  log.Logger
	config  eventLoopConfig
	conduit *ExtensionConduit
	metrics *eventLoopMetrics

	state      timeoutState
	started    time.Time
	extensions int

	mu struct {
		sync.RWMutex
		status   LoopStatus
		tornDown bool
	}
}

// NewEventLoop arms the timer, the countdown starts here and not when Run is first called
func NewEventLoop(config eventLoopConfig, conduit *ExtensionConduit, parentLogger log.Logger, metricFactory metric.Factory) *EventLoop {
	logger := parentLogger.WithTags(LogTag)
	return newEventLoopWithFactory(config, conduit, logger, metricFactory, NewStateFactory(config, logger))
}

// used primarily for tests, the factory decides which kind of timer backs the loop
func NewEventLoopWithTimer(config eventLoopConfig, conduit *ExtensionConduit, parentLogger log.Logger, metricFactory metric.Factory, createTimer func(d time.Duration) *synchronization.DeadlineTimer) *EventLoop {
	logger := parentLogger.WithTags(LogTag)
	return newEventLoopWithFactory(config, conduit, logger, metricFactory, NewStateFactoryWithTimer(config, createTimer, logger))
}

func newEventLoopWithFactory(config eventLoopConfig, conduit *ExtensionConduit, logger log.Logger, metricFactory metric.Factory, factory *stateFactory) *EventLoop {
	l := &EventLoop{
		logger:  logger,
		config:  config,
		conduit: conduit,
		metrics: newEventLoopMetrics(metricFactory),
	}

	l.started = time.Now()
	l.state = factory.CreateInitState()
	l.mu.status = RUNNING

	logger.Info("timer armed", logfields.Duration("initial-duration", config.TimeoutInitialDuration()), logfields.Deadline(l.state.deadline()), log.Stringable("state", l.state))
	return l
}

func (l *EventLoop) Status() LoopStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.mu.status
}

// Run blocks until the timer fires and returns the outcome.
// When ctx ends first the timer is released and the loop cannot be run again.
func (l *EventLoop) Run(ctx context.Context) (*LoopOutcome, error) {
	if err := l.checkRunnable(); err != nil {
		return nil, err
	}

	requests := l.conduit.receive()
	for {
		select {
		case request, ok := <-requests:
			if !ok {
				l.logger.Info("extension conduit closed, waiting on the timer alone", logfields.Deadline(l.state.deadline()))
				requests = nil // a nil channel is never selected, only the timer remains
				continue
			}
			l.extend(request)

		case <-l.state.timeout():
			return l.fire(), nil

		case <-ctx.Done():
			l.tearDown()
			return nil, errors.Wrap(ctx.Err(), "event loop stopped before the timer fired")
		}
	}
}

func (l *EventLoop) checkRunnable() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.mu.status == FIRED {
		return ErrAlreadyFired
	}
	if l.mu.tornDown {
		return ErrTornDown
	}
	return nil
}

func (l *EventLoop) extend(request ExtensionRequest) {
	amount, err := unitsToDuration(request.Amount, l.config.TimeoutTimeUnit())
	if err == nil {
		err = l.state.extendTimeout(amount)
	}

	if err != nil {
		l.metrics.droppedExtensions.Inc()
		l.logger.Error("dropped extension request", log.Error(err), logfields.TimeUnits("amount", request.Amount))
		return
	}

	l.extensions++
	l.metrics.extensions.Inc()
	l.metrics.extensionsRate.Measure(1)

	l.logger.Info("deadline extended", logfields.TimeUnits("amount", request.Amount), logfields.Deadline(l.state.deadline()), logfields.Duration("remaining", l.state.remaining()))
}

func (l *EventLoop) fire() *LoopOutcome {
	l.mu.Lock()
	l.mu.status = FIRED
	l.mu.Unlock()

	outcome := &LoopOutcome{
		Elapsed:           time.Since(l.started),
		Deadline:          l.state.deadline(),
		Extensions:        l.extensions,
		IgnoredExtensions: l.conduit.Pending(),
	}

	l.metrics.timeToFire.Record(outcome.Elapsed)
	l.metrics.ignoredExtensions.Update(int64(outcome.IgnoredExtensions))

	l.logger.Info("timer fired", logfields.Duration("elapsed", outcome.Elapsed), log.Int("extensions", outcome.Extensions), log.Int("ignored-extensions", outcome.IgnoredExtensions))
	return outcome
}

func (l *EventLoop) tearDown() {
	l.mu.Lock()
	l.mu.tornDown = true
	l.mu.Unlock()

	l.state.release()
	l.logger.Info("event loop torn down", log.Stringable("state", l.state), logfields.Duration("remaining", l.state.remaining()))
}

func unitsToDuration(units uint64, unit time.Duration) (time.Duration, error) {
	if unit <= 0 {
		return 0, errors.Errorf("time unit must be positive, got %s", unit)
	}
	if units > uint64(math.MaxInt64/int64(unit)) {
		return 0, errors.Errorf("extension of %d units of %s overflows a duration", units, unit)
	}
	return time.Duration(units) * unit, nil
}
