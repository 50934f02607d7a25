// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package timeout

import (
	"context"
	"github.com/orbs-network/extendable-timeout/test"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"math"
	"sync"
	"testing"
	"time"
)

func TestEventLoop_FiresAfterInitialDurationWithoutExtensions(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newEventLoopHarness(t, log.DefaultTestingLogger(t)).withUnit(10 * time.Millisecond)
		h.sender.Close()

		loop := h.createLoop()
		outcome, err := loop.Run(ctx)

		require.NoError(t, err)
		require.True(t, outcome.ElapsedUnits(h.config.unit) >= 5, "fired after %s, before the initial duration", outcome.Elapsed)
		require.True(t, outcome.ElapsedUnits(h.config.unit) < 10, "fired after %s, far past the initial duration", outcome.Elapsed)
		require.Equal(t, 0, outcome.Extensions)
		require.Equal(t, FIRED, loop.Status())
	})
}

func TestEventLoop_ExtensionPostponesFiring(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newEventLoopHarness(t, log.DefaultTestingLogger(t)).withUnit(10 * time.Millisecond)
		h.requestExtensions(ctx, 10)
		h.sender.Close()

		start := time.Now()
		loop := h.createLoop()
		outcome, err := loop.Run(ctx)

		require.NoError(t, err)
		require.True(t, outcome.ElapsedUnits(h.config.unit) >= 15, "fired after %s, before the extended deadline", outcome.Elapsed)
		require.True(t, outcome.ElapsedUnits(h.config.unit) < 30, "fired after %s, far past the extended deadline", outcome.Elapsed)
		require.True(t, outcome.Deadline.Sub(start) >= h.units(15), "deadline should include the extension")
		require.Equal(t, 1, outcome.Extensions)
	})
}

func TestEventLoop_CountsTimeBeforeRunTowardTheDeadline(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newEventLoopHarness(t, log.DefaultTestingLogger(t)).withInitialUnits(2)
		h.sender.Close()

		loop := h.createLoop()
		time.Sleep(h.units(20))
		outcome, err := loop.Run(ctx)

		require.NoError(t, err)
		require.True(t, outcome.Elapsed >= h.units(20), "elapsed is measured from arming, not from Run")
	})
}

func TestEventLoop_KeepsRunningOnTimerAloneAfterConduitClosed(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newEventLoopHarnessWithManualTimer(t, log.DefaultTestingLogger(t))
		h.sender.Close()

		loop := h.createLoop()
		done := h.runInBackground(ctx, loop)

		require.True(t, test.Consistently(func() bool {
			return len(done) == 0 && loop.Status() == RUNNING
		}), "closing the conduit must not end the loop")

		h.timer.ManualTick()
		result := h.waitForResult(done)

		require.NoError(t, result.err)
		require.Equal(t, FIRED, loop.Status())
	})
}

func TestEventLoop_AppliesExtensionsInOrderBeforeFiring(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newEventLoopHarnessWithManualTimer(t, log.DefaultTestingLogger(t))
		h.requestExtensions(ctx, 3, 0, 7)

		loop := h.createLoop()
		initialDeadline := h.timer.Deadline()
		done := h.runInBackground(ctx, loop)

		require.True(t, test.Eventually(func() bool {
			return h.conduit.Pending() == 0
		}), "loop should consume all queued extensions")
		h.timer.ManualTick()
		result := h.waitForResult(done)

		require.NoError(t, result.err)
		require.Equal(t, 3, result.outcome.Extensions)
		require.Equal(t, 0, result.outcome.IgnoredExtensions)
		require.Equal(t, initialDeadline.Add(h.units(10)), result.outcome.Deadline, "deadline should be pushed by the sum of all amounts")
		require.EqualValues(t, 3, loop.metrics.extensions.Value())
	})
}

func TestEventLoop_AppliesExtensionsFromConcurrentProducers(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newEventLoopHarnessWithManualTimer(t, log.DefaultTestingLogger(t))
		senders := make([]*ExtensionSender, 3)
		for i := range senders {
			sender, err := h.conduit.NewSender()
			require.NoError(t, err)
			senders[i] = sender
		}
		h.sender.Close() // the producers keep the conduit open

		loop := h.createLoop()
		initialDeadline := h.timer.Deadline()
		done := h.runInBackground(ctx, loop)

		var wg sync.WaitGroup
		for _, sender := range senders {
			sender := sender
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sender.Close()
				for j := 0; j < 5; j++ {
					if err := sender.RequestExtension(ctx, 1); err != nil {
						t.Error(err)
					}
				}
			}()
		}
		wg.Wait()

		require.True(t, test.Eventually(func() bool {
			return h.conduit.Pending() == 0
		}), "loop should consume all queued extensions")
		h.timer.ManualTick()
		result := h.waitForResult(done)

		require.NoError(t, result.err)
		require.Equal(t, 15, result.outcome.Extensions)
		require.Equal(t, initialDeadline.Add(h.units(15)), result.outcome.Deadline)
	})
}

func TestEventLoop_DeadlineIsInitialPlusSumOfRandomExtensions(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		ctrlRand := test.NewControlledRand(t)
		h := newEventLoopHarnessWithManualTimer(t, log.DefaultTestingLogger(t))
		amounts := ctrlRand.ExtensionAmounts(1+ctrlRand.Intn(50), 1000)
		h.requestExtensions(ctx, amounts...)

		loop := h.createLoop()
		initialDeadline := h.timer.Deadline()
		done := h.runInBackground(ctx, loop)

		require.True(t, test.Eventually(func() bool {
			return h.conduit.Pending() == 0
		}), "loop should consume all queued extensions")
		h.timer.ManualTick()
		result := h.waitForResult(done)

		var sum uint64
		for _, amount := range amounts {
			sum += amount
		}
		require.NoError(t, result.err)
		require.Equal(t, len(amounts), result.outcome.Extensions)
		require.Equal(t, initialDeadline.Add(h.units(sum)), result.outcome.Deadline)
	})
}

func TestEventLoop_IgnoresExtensionsAfterFiring(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newEventLoopHarnessWithManualTimer(t, log.DefaultTestingLogger(t))

		loop := h.createLoop()
		h.timer.ManualTick()
		outcome, err := loop.Run(ctx)
		require.NoError(t, err)
		require.Equal(t, 0, outcome.Extensions)

		h.requestExtensions(ctx, 10)
		require.Equal(t, 1, h.conduit.Pending(), "request sent after firing stays queued")

		_, err = loop.Run(ctx)
		require.Equal(t, ErrAlreadyFired, errors.Cause(err))
		require.Equal(t, FIRED, loop.Status())
		require.Equal(t, 1, h.conduit.Pending(), "a fired loop must not consume requests")
	})
}

// both the elapsed timer and the queued request are ready on the first select, each order must eventually be taken
func TestEventLoop_ExtensionAndFiringAtTheSameInstantResolveToEitherOrder(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		var appliedFirst, firedFirst int
		for i := 0; i < 200 && (appliedFirst == 0 || firedFirst == 0); i++ {
			h := newEventLoopHarness(t, log.DefaultTestingLogger(t)).withInitialUnits(1)
			loop := h.createLoop()
			initialDeadline := h.timer.Deadline()
			time.Sleep(h.units(3)) // the tick is now pending on the timer channel
			h.requestExtensions(ctx, 10)

			outcome, err := loop.Run(ctx)
			require.NoError(t, err)
			require.Equal(t, 1, outcome.Extensions+outcome.IgnoredExtensions, "the request is either applied before firing or ignored")

			if outcome.IgnoredExtensions == 1 {
				firedFirst++
				require.Equal(t, initialDeadline, outcome.Deadline, "an ignored request must not move the deadline")
				require.Equal(t, 1, h.conduit.Pending(), "an ignored request stays queued")
				require.EqualValues(t, 1, loop.metrics.ignoredExtensions.Value())
			} else {
				appliedFirst++
				require.Equal(t, initialDeadline.Add(h.units(10)), outcome.Deadline)
				require.True(t, outcome.ElapsedUnits(h.config.unit) >= 11, "the stale tick must not fire an extended timer, fired after %s", outcome.Elapsed)
			}
		}

		require.NotZero(t, firedFirst, "firing before the queued request was never observed")
		require.NotZero(t, appliedFirst, "applying the queued request before firing was never observed")
	})
}

func TestEventLoop_DropsExtensionThatOverflowsDuration(t *testing.T) {
	test.WithContext(func(ctx context.Context) {
		h := newEventLoopHarnessWithManualTimer(t, log.DefaultTestingLoggerAllowingErrors(t, "dropped extension request"))
		h.requestExtensions(ctx, math.MaxUint64, 2)

		loop := h.createLoop()
		initialDeadline := h.timer.Deadline()
		done := h.runInBackground(ctx, loop)

		require.True(t, test.Eventually(func() bool {
			return h.conduit.Pending() == 0
		}), "loop should consume all queued extensions")
		h.timer.ManualTick()
		result := h.waitForResult(done)

		require.NoError(t, result.err)
		require.Equal(t, 1, result.outcome.Extensions, "only the valid request is applied")
		require.Equal(t, initialDeadline.Add(h.units(2)), result.outcome.Deadline)
		require.EqualValues(t, 1, loop.metrics.droppedExtensions.Value())
	})
}

func TestEventLoop_TerminatesOnContextTermination(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := newEventLoopHarnessWithManualTimer(t, log.DefaultTestingLogger(t))

	loop := h.createLoop()
	cancel()
	outcome, err := loop.Run(ctx)

	require.Nil(t, outcome, "teardown produces no outcome")
	require.Equal(t, context.Canceled, errors.Cause(err))
	require.Equal(t, RUNNING, loop.Status(), "teardown is not a firing")

	_, err = loop.Run(context.Background())
	require.Equal(t, ErrTornDown, errors.Cause(err))
}

func TestUnitsToDuration(t *testing.T) {
	d, err := unitsToDuration(0, time.Second)
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), d)

	d, err = unitsToDuration(10, time.Second)
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, d)

	_, err = unitsToDuration(math.MaxInt64/uint64(time.Second)+1, time.Second)
	require.Error(t, err, "amount overflowing a duration should be rejected")

	_, err = unitsToDuration(1, 0)
	require.Error(t, err, "zero time unit should be rejected")
}
