// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/extendable-timeout/instrumentation/logfields"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"time"
)

type extensionRequester interface {
	RequestExtension(ctx context.Context, amount uint64) error
	Close()
}

// DemoProducer sends a fixed list of extensions and then closes its sender, which lets the loop run on the timer alone
type DemoProducer struct {
	requester extensionRequester
	amounts   []uint64
	limiter   *rate.Limiter
	logger    log.Logger
}

// a zero interval sends all amounts back to back
func NewDemoProducer(requester extensionRequester, amounts []uint64, interval time.Duration, parentLogger log.Logger) *DemoProducer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &DemoProducer{
		requester: requester,
		amounts:   amounts,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    parentLogger.WithTags(log.String("flow", "demo-producer")),
	}
}

func (p *DemoProducer) Produce(ctx context.Context) error {
	defer p.requester.Close()

	for i, amount := range p.amounts {
		if err := p.limiter.Wait(ctx); err != nil {
			return errors.Wrapf(err, "stopped before sending extension #%d", i)
		}

		if err := p.requester.RequestExtension(ctx, amount); err != nil {
			return errors.Wrapf(err, "failed to send extension #%d", i)
		}

		p.logger.Info("extension requested", logfields.TimeUnits("amount", amount), log.Int("index", i))
	}

	p.logger.Info("all extensions requested, closing sender", log.Int("count", len(p.amounts)))
	return nil
}
