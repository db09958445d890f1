// Package mock provides composable mock handlers for the test kit.
//
// The central type is Chain, which groups independent handler implementations
// under a single account: each candidate answers only the message shapes it
// recognizes and declines the rest, so a test can stack one narrow mock per
// capability instead of writing one handler that understands everything.
package mock

import (
	"errors"

	"github.com/accountvm/testkit/message"
)

// Chain is an ordered sequence of independently owned handlers dispatched
// with fallthrough-on-decline semantics: candidates are tried in insertion
// order, and the first result other than message.ErrNotHandled is returned,
// whether it is a success or a failure. If every candidate declines, the
// chain itself declines.
//
// A Chain holds no state of its own and shares none between candidates.
type Chain struct {
	mocks []message.Handler
}

// NewChain creates a chain from the given candidates, in order.
func NewChain(handlers ...message.Handler) *Chain {
	return &Chain{mocks: handlers}
}

// Add appends a candidate to the end of the chain.
func (c *Chain) Add(handler message.Handler) {
	c.mocks = append(c.mocks, handler)
}

// Len returns the number of candidates in the chain.
func (c *Chain) Len() int {
	return len(c.mocks)
}

// Handle walks the candidates in order. Exactly one candidate's non-decline
// result is observed per call, or none if all fall through.
func (c *Chain) Handle(ctx *message.Context, msg *message.Message) ([]byte, error) {
	for _, m := range c.mocks {
		resp, err := m.Handle(ctx, msg)
		if errors.Is(err, message.ErrNotHandled) {
			continue
		}
		return resp, err
	}
	return nil, message.ErrNotHandled
}
