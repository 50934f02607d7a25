// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/orbs-network/extendable-timeout/bootstrap"
	"github.com/orbs-network/extendable-timeout/config"
	"github.com/orbs-network/extendable-timeout/instrumentation"
	"github.com/orbs-network/extendable-timeout/synchronization"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"os"
	"time"
)

func main() {
	logger := instrumentation.GetBootstrapCrashLogger()
	var runner *bootstrap.Runner
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	func() { // context of bootstrap crash logging
		defer func() {
			if r := recover(); r != nil {
				logger.Error("unexpected error during bootstrap", log.Error(errors.Errorf("unknown error: %v", r)))
				os.Exit(8)
			}
		}()
		silentLog := flag.Bool("silent", false, "disable log output to stderr")
		pathToLog := flag.String("log", "", "path/to/timeout.log")
		version := flag.Bool("version", false, "returns information about version")

		var configFiles config.FilesPaths
		flag.Var(&configFiles, "config", "path/to/config.json")

		flag.Parse()

		if *version {
			fmt.Println(config.GetVersion())
			os.Exit(0)
		}

		cfg, err := config.GetTimeoutConfigFromFiles(configFiles)
		if err != nil {
			logger.Error("error reading configuration", log.Error(err))
			os.Exit(1)
		}

		if err := config.ValidateConfig(cfg); err != nil {
			logger.Error("invalid configuration", log.Error(err))
			os.Exit(1)
		}

		logger, err = instrumentation.GetLogger(*pathToLog, *silentLog, cfg)
		if err != nil {
			instrumentation.GetBootstrapCrashLogger().Error("error creating logger", log.Error(err))
			os.Exit(1)
		}

		runner, err = bootstrap.NewRunner(cfg, logger, bootstrap.NewConsoleReporter(os.Stdout, cfg.TimeoutTimeUnit()))
		if err != nil {
			logger.Error("error creating runner", log.Error(err))
			os.Exit(1)
		}

		synchronization.NewShutdownListener(logger, cancel).ListenToOSShutdownSignal(ctx)
	}()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected error in main goroutine", log.Error(errors.Errorf("unknown error: %v", r)))
			os.Exit(2)
		}
	}()

	_, err := runner.Run(ctx)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	runner.WaitUntilShutdown(shutdownCtx)

	if err != nil {
		if errors.Cause(err) == context.Canceled {
			logger.Info("run ended without an outcome", log.Error(err))
			return
		}
		logger.Error("run failed", log.Error(err))
		os.Exit(1)
	}
}
