// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"math/rand"
	"sync"
)

// rand.Rand is not safe for concurrent use, producers in tests may share one
type syncRand struct {
	lk sync.Mutex
	*rand.Rand
}

func newSyncRand(seed int64) *syncRand {
	return &syncRand{Rand: rand.New(rand.NewSource(seed))}
}

func (r *syncRand) Intn(n int) int {
	r.lk.Lock()
	defer r.lk.Unlock()
	return r.Rand.Intn(n)
}

// Uint64n returns a value in [0, n), n must be positive
func (r *syncRand) Uint64n(n uint64) uint64 {
	r.lk.Lock()
	defer r.lk.Unlock()
	if n <= 1<<63-1 {
		return uint64(r.Rand.Int63n(int64(n)))
	}
	return r.Rand.Uint64() % n
}
