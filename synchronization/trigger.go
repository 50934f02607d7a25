// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package synchronization

import (
	"context"
	"github.com/orbs-network/extendable-timeout/instrumentation/logfields"
	"github.com/orbs-network/govnr"
	"sync/atomic"
	"time"
)

// PeriodicalTrigger calls onTick every interval until it is stopped or its parent context ends.
// onStop runs once after the last tick and before Closed is signaled; the metric reporter flushes its final report there.
type PeriodicalTrigger struct {
	govnr.TreeSupervisor
	name     string
	interval time.Duration
	onTick   func()
	onStop   func()
	cancel   context.CancelFunc
	ticks    uint64
	Closed   govnr.ContextEndedChan
}

func NewPeriodicalTrigger(ctx context.Context, name string, interval time.Duration, logger logfields.Errorer, onTick func(), onStop func()) *PeriodicalTrigger {
	subCtx, cancel := context.WithCancel(ctx)
	t := &PeriodicalTrigger{
		name:     name,
		interval: interval,
		onTick:   onTick,
		onStop:   onStop,
		cancel:   cancel,
	}

	h := govnr.Forever(subCtx, name, logfields.GovnrErrorer(logger), func() {
		t.loop(subCtx)
	})
	t.Closed = h.Done()
	t.Supervise(h)
	return t
}

// a panicking onTick restarts the loop with a fresh ticker
func (t *PeriodicalTrigger) loop(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			atomic.AddUint64(&t.ticks, 1)
			t.onTick()
		case <-ctx.Done():
			if t.onStop != nil {
				t.onStop()
			}
			return
		}
	}
}

func (t *PeriodicalTrigger) Name() string {
	return t.name
}

// TimesTriggered counts completed and in-progress onTick calls
func (t *PeriodicalTrigger) TimesTriggered() uint64 {
	return atomic.LoadUint64(&t.ticks)
}

// Stop returns after the loop ended and onStop ran
func (t *PeriodicalTrigger) Stop() {
	t.cancel()
	<-t.Closed
}
