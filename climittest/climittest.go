/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package climittest provides helpers for testing code built on climit futures.
package climittest

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/require"
)

// Settler is the settlement surface of climit futures.
// Every *climit.Future satisfies it.
type Settler interface {
	Done() <-chan struct{}
}

// RequireSettledWithin asserts that s settles within d.
func RequireSettledWithin(t require.TestingT, s Settler, d time.Duration, msgAndArgs ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.Done():
	case <-timer.C:
		require.FailNow(t, fmt.Sprintf("future is not settled after %s", d), msgAndArgs...)
	}
}

// RequireNeverSettles asserts that s stays unsettled for the whole window.
func RequireNeverSettles(t require.TestingT, s Settler, window time.Duration, msgAndArgs ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	timer := time.NewTimer(window)
	defer timer.Stop()
	select {
	case <-s.Done():
		require.FailNow(t, fmt.Sprintf("future is settled within %s", window), msgAndArgs...)
	case <-timer.C:
	}
}

// Gate coordinates test tasks that must be held in flight deterministically.
// Each task built by Task signals on Started once it begins executing and
// then blocks until Release is called.
type Gate struct {
	started chan struct{}
	release chan struct{}
}

// NewGate creates a new Gate.
func NewGate() *Gate {
	return &Gate{
		started: make(chan struct{}, 1024),
		release: make(chan struct{}),
	}
}

// Task returns an invocation suitable for climit.Submit.
func (g *Gate) Task() func(context.Context) error {
	return func(ctx context.Context) error {
		g.started <- struct{}{}
		select {
		case <-g.release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Started delivers one signal per task that began executing.
func (g *Gate) Started() <-chan struct{} {
	return g.started
}

// RequireStartedWithin asserts that n tasks begin executing within d.
func (g *Gate) RequireStartedWithin(t require.TestingT, n int, d time.Duration) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	for i := 0; i < n; i++ {
		select {
		case <-g.started:
		case <-timer.C:
			require.FailNow(t, fmt.Sprintf("only %d of %d tasks started after %s", i, n, d))
		}
	}
}

// Release unblocks all current and future tasks of the gate.
// It must be called at most once.
func (g *Gate) Release() {
	close(g.release)
}

type tHelper interface {
	Helper()
}
