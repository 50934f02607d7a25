// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"fmt"
	"github.com/orbs-network/extendable-timeout/services/timeout"
	"github.com/pkg/errors"
	"io"
	"time"
)

// OutcomeReporter is notified exactly once, after the timer fired
type OutcomeReporter interface {
	ReportOutcome(outcome *timeout.LoopOutcome) error
}

type consoleReporter struct {
	writer io.Writer
	unit   time.Duration
}

// NewConsoleReporter prints the elapsed time in whole units, e.g. "Time out: 15"
func NewConsoleReporter(writer io.Writer, unit time.Duration) OutcomeReporter {
	return &consoleReporter{
		writer: writer,
		unit:   unit,
	}
}

func (r *consoleReporter) ReportOutcome(outcome *timeout.LoopOutcome) error {
	_, err := fmt.Fprintf(r.writer, "Time out: %d\n", outcome.ElapsedUnits(r.unit))
	return errors.Wrap(err, "failed to print outcome")
}
