// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func requestExtensionsAt(rate *Rate, at time.Time, count int) {
	for i := 0; i < count; i++ {
		rate.measureAsOf(at, 1)
	}
}

func TestRate_BurstOfExtensionsIsReportedAfterTheTickPasses(t *testing.T) {
	start := time.Now()
	rate := newRateStartingAt("Timeout.EventLoop.Extensions.PerSecond", start)

	requestExtensionsAt(rate, start.Add(100*time.Millisecond), 40)
	require.Zero(t, rate.export().Rate, "extensions of the current tick should not be averaged yet")

	rate.maybeRotateAsOf(start.Add(1100 * time.Millisecond))
	require.EqualValues(t, 40, rate.export().Rate)
}

func TestRate_ExtensionsSpanningTicksAreCountedInTheirOwnTick(t *testing.T) {
	start := time.Now()
	rate := newRateStartingAt("Timeout.EventLoop.Extensions.PerSecond", start)

	requestExtensionsAt(rate, start.Add(900*time.Millisecond), 10)
	requestExtensionsAt(rate, start.Add(1100*time.Millisecond), 30)

	require.EqualValues(t, 10, rate.export().Rate, "only the first tick has passed")
}

func TestRate_DecaysWhileNoExtensionsArrive(t *testing.T) {
	start := time.Now()
	rate := newRateStartingAt("Timeout.EventLoop.Extensions.PerSecond", start)
	requestExtensionsAt(rate, start, 40)

	previous := float64(40)
	for i := 2; i < 10; i++ {
		rate.maybeRotateAsOf(start.Add(time.Duration(i) * time.Second))
		current := rate.export().Rate
		require.True(t, current < previous, "rate did not decay at second %d: %f, was %f", i, current, previous)
		require.True(t, current > 0, "rate decayed to zero at second %d", i)
		previous = current
	}
}

func TestRate_ReportsPerTickInterval(t *testing.T) {
	start := time.Now()
	rate := newRateStartingAt("Timeout.EventLoop.Extensions.PerSecond", start)
	requestExtensionsAt(rate, start, 3)
	rate.maybeRotateAsOf(start.Add(tickInterval))

	require.Equal(t, "metric Timeout.EventLoop.Extensions.PerSecond: 3.000000 per 1s\n", rate.String())

	row := map[string]string{}
	for _, field := range rate.export().LogRow() {
		row[field.Key] = field.String()
	}
	require.Contains(t, row, "rate")
	require.Contains(t, row, "interval")
	require.Equal(t, "Timeout.EventLoop.Extensions.PerSecond", rate.export().LogRow()[0].StringVal)
	require.Equal(t, "rate", rate.export().LogRow()[1].StringVal)
}
