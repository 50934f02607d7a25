// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package timeout

import (
	"time"
)

// the capabilities every timeout state offers the event loop: await the timeout, extend the timeout.
// only the init state exists today, later phases are expected to come with their own timeout semantics
type timeoutState interface {
	name() string
	String() string
	timeout() <-chan time.Time
	extendTimeout(amount time.Duration) error
	deadline() time.Time
	remaining() time.Duration
	release()
}

type LoopStatus int

const (
	RUNNING LoopStatus = iota
	FIRED
)

func (s LoopStatus) String() string {
	switch s {
	case RUNNING:
		return "running"
	case FIRED:
		return "fired"
	default:
		return "unknown"
	}
}
