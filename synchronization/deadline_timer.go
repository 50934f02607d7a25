// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package synchronization

import (
	"github.com/pkg/errors"
	"time"
)

// DeadlineTimer is a single countdown whose firing point can be pushed forward while it is being waited on.
//
// The wait handle is armed when the timer is created, so time spent before the first Wait() counts toward the deadline.
// A DeadlineTimer has exactly one owner: it is not safe for concurrent use, the owning loop is its only mutator.
type DeadlineTimer struct {
	deadline     time.Time
	baseDuration time.Duration
	wait         *Timer // the armed wait handle, nil only while Extend holds it
}

func NewDeadlineTimer(d time.Duration) *DeadlineTimer {
	return newDeadlineTimer(d, NewTimer(d))
}

// used primarily for tests, the timer only fires on ManualTick()
func NewDeadlineTimerWithManualTick(d time.Duration) *DeadlineTimer {
	return newDeadlineTimer(d, NewTimerWithManualTick())
}

func newDeadlineTimer(d time.Duration, wait *Timer) *DeadlineTimer {
	return &DeadlineTimer{
		deadline:     time.Now().Add(d),
		baseDuration: d,
		wait:         wait,
	}
}

// Wait returns the channel of the in-flight wait handle. Every call returns the same channel,
// including after Extend, so a select that keeps re-reading it observes the extended deadline.
func (t *DeadlineTimer) Wait() <-chan time.Time {
	if t.wait == nil {
		panic("deadline timer has no armed wait handle")
	}
	return t.wait.C
}

// Extend moves the deadline forward by amount and re-arms the same wait handle on the new deadline.
// A zero amount leaves the timer untouched, a negative amount is rejected.
func (t *DeadlineTimer) Extend(amount time.Duration) error {
	if amount < 0 {
		return errors.Errorf("cannot extend deadline by a negative amount %s", amount)
	}

	wait := t.takeWaitHandle()
	defer t.putWaitHandle(wait)

	if amount == 0 {
		return nil
	}

	t.deadline = t.deadline.Add(amount)
	wait.ResetAt(t.deadline)
	return nil
}

func (t *DeadlineTimer) takeWaitHandle() *Timer {
	wait := t.wait
	if wait == nil {
		panic("cannot extend a deadline timer with no armed wait handle")
	}
	t.wait = nil
	return wait
}

func (t *DeadlineTimer) putWaitHandle(wait *Timer) {
	t.wait = wait
}

func (t *DeadlineTimer) Deadline() time.Time {
	return t.deadline
}

func (t *DeadlineTimer) BaseDuration() time.Duration {
	return t.baseDuration
}

func (t *DeadlineTimer) Remaining() time.Duration {
	return time.Until(t.deadline)
}

// Stop releases the underlying timer; used on teardown, the handle is never armed again.
func (t *DeadlineTimer) Stop() {
	if t.wait != nil {
		t.wait.Stop()
	}
}

// used primarily for tests
func (t *DeadlineTimer) ManualTick() {
	if t.wait != nil {
		t.wait.ManualTick()
	}
}
