// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/pkg/errors"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// ValidateConfig rejects configurations the event loop cannot be built from
func ValidateConfig(cfg TimeoutConfig) error {
	if err := requirePositive(cfg.TimeoutTimeUnit); err != nil {
		return err
	}

	if err := requirePositive(cfg.MetricsReportInterval); err != nil {
		return err
	}

	if cfg.TimeoutExtensionConduitCapacity() == 0 {
		return errors.New("TimeoutExtensionConduitCapacity must be at least 1")
	}

	if cfg.DemoProducerInterval() < 0 {
		return errors.Errorf("DemoProducerInterval must not be negative, got %s", cfg.DemoProducerInterval())
	}

	return nil
}

func requirePositive(d func() time.Duration) error {
	if d() <= 0 {
		return errors.Errorf("%s must be positive, got %s", funcName(d), d())
	}
	return nil
}

func funcName(i interface{}) string {
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	lastDot := strings.LastIndex(fullName, ".")
	return strings.TrimSuffix(fullName[lastDot+1:], "-fm")
}
