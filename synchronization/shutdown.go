// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package synchronization

import (
	"context"
	"github.com/orbs-network/extendable-timeout/instrumentation/logfields"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/scribe/log"
	"os"
	"os/signal"
	"syscall"
)

// OSShutdownListener tears down a run by cancelling its context when the process is asked to terminate
type OSShutdownListener struct {
	Logger log.Logger
	cancel context.CancelFunc
	signal chan os.Signal
}

func NewShutdownListener(logger log.Logger, cancel context.CancelFunc) *OSShutdownListener {
	return &OSShutdownListener{
		Logger: logger,
		cancel: cancel,
		signal: make(chan os.Signal, 1),
	}
}

func (n *OSShutdownListener) ListenToOSShutdownSignal(ctx context.Context) {
	// if waiting for shutdown, listen for sigint and sigterm
	signal.Notify(n.signal, os.Interrupt, syscall.SIGTERM)
	govnr.Once(logfields.GovnrErrorer(n.Logger), func() {
		defer signal.Stop(n.signal)
		select {
		case <-n.signal:
			n.Logger.Info("terminating run due to os signal received")
			n.cancel()
		case <-ctx.Done():
		}
	})
}
