// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package synchronization

import "time"

// This struct comes to work around the timer channel issue: https://github.com/golang/go/issues/11513
// Google couldn't break the API or behavior, so they documented it https://github.com/golang/go/issues/14383
// we just wrap the timer so we can reset and stop as expected without the workaround of the channel issue.
type Timer struct {
	timer *time.Timer
	C     <-chan time.Time

	writableC *chan time.Time // the same as C just writable and not exported, used by NewTimerWithManualTick()
}

func NewTimer(d time.Duration) *Timer {
	timer := time.NewTimer(d)
	return &Timer{timer: timer, C: timer.C}
}

// Reset re-arms the timer to fire after d; a tick that was already pending on C is discarded.
// C stays the same channel, so a goroutine selecting on it keeps waiting on the new target.
func (t *Timer) Reset(d time.Duration) bool {
	if t.timer == nil {
		return false
	}

	active := t.Stop()
	t.timer.Reset(d)
	return active
}

// ResetAt re-arms the timer to fire at an absolute point in time. A deadline in the past fires immediately.
func (t *Timer) ResetAt(deadline time.Time) bool {
	return t.Reset(time.Until(deadline))
}

func (t *Timer) Stop() bool {
	if t.timer == nil {
		return false
	}

	active := t.timer.Stop()
	if !active {
		select {
		case <-t.C:
		default:
		}
	}
	return active
}

// used primarily for tests
func (t *Timer) ManualTick() {
	if t.writableC != nil {
		go func() { // ManualTick is expected to be non blocking
			*t.writableC <- time.Now()
		}()
	}
}

// used primarily for tests
func NewTimerWithManualTick() *Timer {
	c := make(chan time.Time)
	return &Timer{
		C:         c,
		writableC: &c,
	}
}
