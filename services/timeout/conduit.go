// Copyright 2019 the extendable-timeout authors
// This file is part of the extendable-timeout library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package timeout

import (
	"context"
	"github.com/pkg/errors"
	"sync"
)

var ErrSenderClosed = errors.New("extension sender is closed")
var ErrConduitClosed = errors.New("extension conduit is closed, all of its senders were closed")

// ExtensionRequest asks the event loop to push its deadline forward by Amount time units
type ExtensionRequest struct {
	Amount uint64
}

// ExtensionConduit is a bounded FIFO of extension requests with any number of senders and the event loop as its only consumer.
// The underlying channel is closed once the last sender is closed, which the loop observes as "no more extensions will arrive".
type ExtensionConduit struct {
	requests chan ExtensionRequest

	mu struct {
		sync.Mutex
		senders int
		closed  bool
	}
}

func NewExtensionConduit(capacity int) (*ExtensionConduit, error) {
	if capacity < 1 {
		return nil, errors.Errorf("extension conduit capacity must be at least 1, got %d", capacity)
	}
	return &ExtensionConduit{requests: make(chan ExtensionRequest, capacity)}, nil
}

// NewSender registers another producer; it fails once the conduit closed
func (c *ExtensionConduit) NewSender() (*ExtensionSender, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mu.closed {
		return nil, ErrConduitClosed
	}
	c.mu.senders++
	return newExtensionSender(c), nil
}

// Pending is the number of queued requests not yet consumed
func (c *ExtensionConduit) Pending() int {
	return len(c.requests)
}

func (c *ExtensionConduit) Capacity() int {
	return cap(c.requests)
}

func (c *ExtensionConduit) receive() <-chan ExtensionRequest {
	return c.requests
}

func (c *ExtensionConduit) releaseSender() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mu.senders--
	if c.mu.senders == 0 {
		c.mu.closed = true
		close(c.requests)
	}
}

type ExtensionSender struct {
	conduit *ExtensionConduit
	closing chan struct{} // closed by Close, wakes up requests blocked on a full conduit
	sending sync.WaitGroup

	mu struct {
		sync.Mutex
		closed bool
	}
}

func newExtensionSender(conduit *ExtensionConduit) *ExtensionSender {
	return &ExtensionSender{
		conduit: conduit,
		closing: make(chan struct{}),
	}
}

// RequestExtension blocks while the conduit is full, until ctx is done or the sender is closed
func (s *ExtensionSender) RequestExtension(ctx context.Context, amount uint64) error {
	if !s.beginSend() {
		return ErrSenderClosed
	}
	defer s.sending.Done()

	select {
	case s.conduit.requests <- ExtensionRequest{Amount: amount}:
		return nil
	case <-s.closing:
		return ErrSenderClosed
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "extension request was not enqueued")
	}
}

func (s *ExtensionSender) beginSend() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mu.closed {
		return false
	}
	s.sending.Add(1)
	return true
}

// Close is idempotent and does not wait for the conduit to drain: blocked requests give up with ErrSenderClosed.
// Closing the last open sender closes the conduit.
func (s *ExtensionSender) Close() {
	s.mu.Lock()
	if s.mu.closed {
		s.mu.Unlock()
		return
	}
	s.mu.closed = true
	close(s.closing)
	s.mu.Unlock()

	s.sending.Wait() // the channel must not be closed under an in-flight send
	s.conduit.releaseSender()
}
