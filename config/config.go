// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

type TimeoutConfig interface {
	// event loop
	TimeoutInitialDuration() time.Duration
	TimeoutInitialDurationInUnits() uint32
	TimeoutTimeUnit() time.Duration
	TimeoutExtensionConduitCapacity() uint32

	// demo producer
	DemoExtensions() []uint64
	DemoProducerInterval() time.Duration

	// instrumentation
	MetricsReportInterval() time.Duration
	LoggerFullLog() bool
	LoggerFileTruncationInterval() time.Duration
}

type mutableTimeoutConfig interface {
	TimeoutConfig
	Set(key string, value TimeoutConfigValue) mutableTimeoutConfig
	SetDuration(key string, value time.Duration) mutableTimeoutConfig
	SetUint32(key string, value uint32) mutableTimeoutConfig
	SetString(key string, value string) mutableTimeoutConfig
	SetBool(key string, value bool) mutableTimeoutConfig
	SetUint64List(key string, value []uint64) mutableTimeoutConfig
}

type TimeoutConfigKeyValue struct {
	Key   string
	Value TimeoutConfigValue
}

type TimeoutConfigValue struct {
	Uint32Value     uint32
	DurationValue   time.Duration
	StringValue     string
	BoolValue       bool
	Uint64ListValue []uint64
}

type config struct {
	kv map[string]TimeoutConfigValue
}

const (
	TIMEOUT_INITIAL_DURATION           = "TIMEOUT_INITIAL_DURATION"
	TIMEOUT_TIME_UNIT                  = "TIMEOUT_TIME_UNIT"
	TIMEOUT_EXTENSION_CONDUIT_CAPACITY = "TIMEOUT_EXTENSION_CONDUIT_CAPACITY"

	DEMO_EXTENSIONS        = "DEMO_EXTENSIONS"
	DEMO_PRODUCER_INTERVAL = "DEMO_PRODUCER_INTERVAL"

	METRICS_REPORT_INTERVAL = "METRICS_REPORT_INTERVAL"

	LOGGER_FULL_LOG                 = "LOGGER_FULL_LOG"
	LOGGER_FILE_TRUNCATION_INTERVAL = "LOGGER_FILE_TRUNCATION_INTERVAL"
)

func emptyConfig() mutableTimeoutConfig {
	return &config{
		kv: make(map[string]TimeoutConfigValue),
	}
}

func (c *config) Set(key string, value TimeoutConfigValue) mutableTimeoutConfig {
	c.kv[key] = value
	return c
}

func (c *config) SetDuration(key string, value time.Duration) mutableTimeoutConfig {
	c.kv[key] = TimeoutConfigValue{DurationValue: value}
	return c
}

func (c *config) SetUint32(key string, value uint32) mutableTimeoutConfig {
	c.kv[key] = TimeoutConfigValue{Uint32Value: value}
	return c
}

func (c *config) SetString(key string, value string) mutableTimeoutConfig {
	c.kv[key] = TimeoutConfigValue{StringValue: value}
	return c
}

func (c *config) SetBool(key string, value bool) mutableTimeoutConfig {
	c.kv[key] = TimeoutConfigValue{BoolValue: value}
	return c
}

func (c *config) SetUint64List(key string, value []uint64) mutableTimeoutConfig {
	list := make([]uint64, len(value))
	copy(list, value)
	c.kv[key] = TimeoutConfigValue{Uint64ListValue: list}
	return c
}

// the initial countdown, expressed in time units
func (c *config) TimeoutInitialDuration() time.Duration {
	return time.Duration(c.TimeoutInitialDurationInUnits()) * c.TimeoutTimeUnit()
}

func (c *config) TimeoutInitialDurationInUnits() uint32 {
	return c.kv[TIMEOUT_INITIAL_DURATION].Uint32Value
}

func (c *config) TimeoutTimeUnit() time.Duration {
	return c.kv[TIMEOUT_TIME_UNIT].DurationValue
}

func (c *config) TimeoutExtensionConduitCapacity() uint32 {
	return c.kv[TIMEOUT_EXTENSION_CONDUIT_CAPACITY].Uint32Value
}

func (c *config) DemoExtensions() []uint64 {
	return c.kv[DEMO_EXTENSIONS].Uint64ListValue
}

func (c *config) DemoProducerInterval() time.Duration {
	return c.kv[DEMO_PRODUCER_INTERVAL].DurationValue
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) LoggerFullLog() bool {
	return c.kv[LOGGER_FULL_LOG].BoolValue
}

func (c *config) LoggerFileTruncationInterval() time.Duration {
	return c.kv[LOGGER_FILE_TRUNCATION_INTERVAL].DurationValue
}
