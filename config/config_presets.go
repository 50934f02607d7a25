// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

// all other configs are variations from the production one
func defaultProductionConfig() mutableTimeoutConfig {
	cfg := emptyConfig()

	// the countdown is 5 units, one unit is a second
	cfg.SetUint32(TIMEOUT_INITIAL_DURATION, 5)
	cfg.SetDuration(TIMEOUT_TIME_UNIT, 1*time.Second)

	// producers block once this many extension requests are queued
	cfg.SetUint32(TIMEOUT_EXTENSION_CONDUIT_CAPACITY, 100)

	// a single extension of 10 units sent right after the loop starts
	cfg.SetUint64List(DEMO_EXTENSIONS, []uint64{10})
	cfg.SetDuration(DEMO_PRODUCER_INTERVAL, 0)

	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)

	cfg.SetBool(LOGGER_FULL_LOG, true)
	cfg.SetDuration(LOGGER_FILE_TRUNCATION_INTERVAL, 24*time.Hour)

	return cfg
}

// config for running the demo process
func ForProduction() mutableTimeoutConfig {
	return defaultProductionConfig()
}

// config for tests, same shape as production with a 1ms time unit
func ForTests(initialDurationInUnits uint32, extensions ...uint64) mutableTimeoutConfig {
	cfg := defaultProductionConfig()

	cfg.SetUint32(TIMEOUT_INITIAL_DURATION, initialDurationInUnits)
	cfg.SetDuration(TIMEOUT_TIME_UNIT, 1*time.Millisecond)
	cfg.SetUint64List(DEMO_EXTENSIONS, extensions)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 10*time.Millisecond)

	return cfg
}
