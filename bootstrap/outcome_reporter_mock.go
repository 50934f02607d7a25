// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"github.com/orbs-network/extendable-timeout/services/timeout"
	"github.com/orbs-network/go-mock"
)

type MockOutcomeReporter struct {
	mock.Mock
}

func (r *MockOutcomeReporter) ReportOutcome(outcome *timeout.LoopOutcome) error {
	ret := r.Called(outcome)
	return ret.Error(0)
}
