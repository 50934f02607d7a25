// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"fmt"
	"github.com/VividCortex/ewma"
	"github.com/orbs-network/scribe/log"
	"sync"
	"time"
)

var tickInterval = 1 * time.Second

// Rate is an exponentially weighted moving average of events per tickInterval

type Rate struct {
	namedMetric
	movingAverage ewma.MovingAverage

	m          sync.Mutex
	runningSum int64
	nextTick   time.Time
}

type rateExport struct {
	Name     string
	Rate     float64
	Interval time.Duration
}

func newRate(name string) *Rate {
	return newRateStartingAt(name, time.Now())
}

func newRateStartingAt(name string, start time.Time) *Rate {
	return &Rate{
		namedMetric:   namedMetric{name: name},
		movingAverage: ewma.NewMovingAverage(),
		nextTick:      start.Add(tickInterval),
	}
}

func (r *Rate) Export() exportedMetric {
	return r.export()
}

func (r *Rate) export() rateExport {
	r.m.Lock()
	defer r.m.Unlock()

	return rateExport{
		r.name,
		r.movingAverage.Value(),
		tickInterval,
	}
}

func (r *Rate) String() string {
	e := r.export()
	return fmt.Sprintf("metric %s: %f per %s\n", e.Name, e.Rate, e.Interval)
}

func (r *Rate) Measure(eventCount int64) {
	r.measureAsOf(time.Now(), eventCount)
}

// events count toward the tick they arrive in and reach the moving average once that tick has passed
func (r *Rate) measureAsOf(now time.Time, eventCount int64) {
	r.m.Lock()
	defer r.m.Unlock()

	r.maybeRotateAsOf(now)
	r.runningSum += eventCount
}

// must be called with r.m held, unless the rate is not shared between goroutines
func (r *Rate) maybeRotateAsOf(now time.Time) {
	for !now.Before(r.nextTick) {
		r.movingAverage.Add(float64(r.runningSum))
		r.runningSum = 0
		r.nextTick = r.nextTick.Add(tickInterval)
	}
}

func (r rateExport) LogRow() []*log.Field {
	return []*log.Field{
		log.String("metric", r.Name),
		log.String("metric-type", "rate"),
		log.Float64("rate", r.Rate),
		log.Stringable("interval", r.Interval),
	}
}
