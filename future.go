/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climit

import "context"

// Future represents the eventual result of a submitted task.
// It settles at most once, when the task completes or is discarded by
// ClearQueue with the RejectOnClear option enabled.
// A task discarded with RejectOnClear disabled leaves its future
// permanently unsettled: Done never closes and Wait returns only when
// the caller's context is done.
type Future[R any] struct {
	done chan struct{}
	val  R
	err  error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// settle must be called at most once; the limiter guarantees that a task is
// either executed or discarded, never both.
func (f *Future[R]) settle(val R, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed when the future settles.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles or ctx is done.
// On settlement it returns the task's result and error as-is;
// on context expiration it returns ctx.Err().
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
