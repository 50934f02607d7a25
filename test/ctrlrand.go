// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"flag"
	"fmt"
	"strconv"
	"time"
)

func init() {
	flag.Var(&randPreference, "test.randSeed",
		"Specify a random seed for tests, or 'launchClock' to use"+
			" the same arbitrary value in each test invocation")
}

type NamedLogger interface {
	Log(args ...interface{})
	Name() string
}

type randMode int

const (
	randPrefInvokeClock randMode = iota
	randPrefLaunchClock
	randPrefExplicit
)

// ControlledRand logs its seed so a failing randomized test can be replayed with -test.randSeed
type ControlledRand struct {
	*syncRand
}

func NewControlledRand(t NamedLogger) *ControlledRand {
	var newSeed int64
	if randPreference.mode == randPrefInvokeClock {
		newSeed = time.Now().UTC().UnixNano()
	} else {
		newSeed = randPreference.seed
	}
	t.Log(fmt.Sprintf("random seed %v (%s)", newSeed, t.Name()))

	return &ControlledRand{newSyncRand(newSeed)}
}

// ExtensionAmounts returns count amounts, each in [0, maxUnits]
func (r *ControlledRand) ExtensionAmounts(count int, maxUnits uint64) []uint64 {
	amounts := make([]uint64, count)
	for i := range amounts {
		amounts[i] = r.Uint64n(maxUnits + 1)
	}
	return amounts
}

type randomPreference struct {
	mode randMode // default value is randPrefInvokeClock
	seed int64    // applicable only in mode != randPrefInvokeClock
}

var randPreference randomPreference

func (i *randomPreference) String() string {
	var preference string
	switch i.mode {
	case randPrefInvokeClock:
		preference = "clock at invocation (default)"
	case randPrefLaunchClock:
		preference = fmt.Sprintf("launchClock: %v", i.seed)
	case randPrefExplicit:
		preference = fmt.Sprintf("explicit seed: %v", i.seed)
	}
	return preference
}

func (i *randomPreference) Set(value string) error {
	if value == "launchClock" {
		i.mode = randPrefLaunchClock
		i.seed = time.Now().UTC().UnixNano()
		return nil
	}
	i.mode = randPrefExplicit
	v, err := strconv.ParseInt(value, 0, 64)
	i.seed = v
	return err
}
