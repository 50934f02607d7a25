// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package timeout

import (
	"github.com/orbs-network/extendable-timeout/synchronization"
	"time"
)

type initState struct {
	timer *synchronization.DeadlineTimer
}

func (s *initState) name() string {
	return "init-state"
}

func (s *initState) String() string {
	return s.name()
}

func (s *initState) timeout() <-chan time.Time {
	return s.timer.Wait()
}

func (s *initState) extendTimeout(amount time.Duration) error {
	return s.timer.Extend(amount)
}

func (s *initState) deadline() time.Time {
	return s.timer.Deadline()
}

func (s *initState) remaining() time.Duration {
	return s.timer.Remaining()
}

func (s *initState) release() {
	s.timer.Stop()
}
