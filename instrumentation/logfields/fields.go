// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package logfields

import (
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"runtime/debug"
	"time"
)

type Errorer interface {
	Error(message string, fields ...*log.Field)
}

type govnrErrorer struct {
	logger Errorer
}

func (h *govnrErrorer) Error(err error) {
	h.logger.Error("recovered panic", log.Error(err), log.String("stack-trace", string(debug.Stack())))
}

// GovnrErrorer lets goroutines supervised by govnr report their panics to a scribe logger
func GovnrErrorer(logger Errorer) govnr.Errorer {
	return &govnrErrorer{logger}
}

func Deadline(value time.Time) *log.Field {
	return log.String("deadline", value.Format(time.RFC3339Nano))
}

func Duration(key string, value time.Duration) *log.Field {
	return log.Stringable(key, value)
}

func TimeUnits(key string, units uint64) *log.Field {
	return log.Uint64(key, units)
}
