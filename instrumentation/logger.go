// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package instrumentation

import (
	"github.com/orbs-network/extendable-timeout/config"
	"github.com/orbs-network/extendable-timeout/services/timeout"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"os"
)

// GetBootstrapCrashLogger is used until the configuration is loaded
func GetBootstrapCrashLogger() log.Logger {
	return log.GetLogger().WithOutput(log.NewFormattingOutput(os.Stderr, log.NewHumanReadableFormatter()))
}

// GetLogger never writes to stdout, which is reserved for the outcome line
func GetLogger(path string, silent bool, cfg config.TimeoutConfig) (log.Logger, error) {
	outputs := make([]log.Output, 0, 2)

	if !silent {
		outputs = append(outputs, log.NewFormattingOutput(os.Stderr, log.NewHumanReadableFormatter()))
	}

	if path != "" {
		logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open log file %s", path)
		}

		fileWriter := log.NewTruncatingFileWriter(logFile, cfg.LoggerFileTruncationInterval())
		outputs = append(outputs, log.NewFormattingOutput(fileWriter, log.NewJsonFormatter()))
	}

	logger := log.GetLogger().WithOutput(outputs...)

	conditionalFilter := log.NewConditionalFilter(false, nil)

	if !cfg.LoggerFullLog() {
		conditionalFilter = log.NewConditionalFilter(true, log.Or(log.OnlyErrors(), log.MatchField(timeout.LogTag)))
	}

	return logger.WithFilters(conditionalFilter), nil
}
