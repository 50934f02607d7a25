// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package timeout

import (
	"time"
)

// LoopOutcome is produced exactly once, when the timer fires
type LoopOutcome struct {
	Elapsed           time.Duration // from loop start to firing
	Deadline          time.Time     // the effective deadline after all applied extensions
	Extensions        int
	IgnoredExtensions int // still queued when the timer fired
}

// ElapsedUnits truncates to whole time units
func (o *LoopOutcome) ElapsedUnits(unit time.Duration) int64 {
	return int64(o.Elapsed / unit)
}
