// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package wait

import (
	"github.com/pkg/errors"
	"time"
)

// useful for waiting on done channels during tests, e.g. ctx.Done()
func AtMost(ch <-chan struct{}, timeout time.Duration) error {
	select {
	case <-ch:
		return nil
	case <-time.After(timeout):
		return errors.Errorf("channel was not closed within %s", timeout)
	}
}

// AtMost with a default timeout, where we don't care about times
func ForSignal(ch <-chan struct{}) error {
	return AtMost(ch, 1*time.Second)
}
