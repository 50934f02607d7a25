// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"context"
	"github.com/orbs-network/govnr"
	"testing"
	"time"
)

// ShutdownTimeout bounds how long a test waits for a runner to wind down its goroutines
const ShutdownTimeout = 5 * time.Second

func WithContext(f func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f(ctx)
}

// WithContextAndShutdown cancels ctx once f returns and fails tb if waiter does not shut down in time
func WithContextAndShutdown(tb testing.TB, waiter govnr.ShutdownWaiter, f func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	defer requireShutdown(tb, waiter)
	defer cancel()
	f(ctx)
}

func requireShutdown(tb testing.TB, waiter govnr.ShutdownWaiter) {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	waiter.WaitUntilShutdown(ctx)
	if ctx.Err() == context.DeadlineExceeded {
		tb.Errorf("still running %s after the test context was cancelled", ShutdownTimeout)
	}
}

func WithContextWithTimeout(d time.Duration, f func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	f(ctx)
}
