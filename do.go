/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climit

import "context"

// Do submits fn to the limiter and returns a Future for its eventual result.
// Do never blocks waiting for capacity: if all slots are busy, the task is
// queued and started in submission order once a slot frees up.
//
// The context is forwarded to fn when the task is dispatched. The limiter
// itself does not cancel queued tasks when the context expires; callers that
// need per-task cancellation should build it into fn.
//
// Arguments are bound with a closure, which lets one limiter serve many
// different functions and argument sets:
//
//	fut := climit.Do(ctx, limiter, func(ctx context.Context) ([]byte, error) {
//		return fetch(ctx, url)
//	})
//
// Do itself never fails: a nil fn settles the future with a *ValidationError,
// and a panic inside fn is recovered and settles the future with a *PanicError.
func Do[R any](ctx context.Context, l *Limiter, fn func(context.Context) (R, error)) *Future[R] {
	fut := newFuture[R]()
	if fn == nil {
		var zero R
		fut.settle(zero, &ValidationError{Param: "fn", Value: nil, Reason: "must not be nil"})
		return fut
	}
	l.enqueue(&task{
		exec: func() error {
			val, err := invoke(ctx, fn)
			fut.settle(val, err)
			return err
		},
		discard: func() {
			var zero R
			fut.settle(zero, ErrCleared)
		},
	})
	return fut
}

// Submit is an error-only convenience over Do for tasks without a result value.
func Submit(ctx context.Context, l *Limiter, fn func(context.Context) error) *Future[struct{}] {
	if fn == nil {
		return Do[struct{}](ctx, l, nil)
	}
	return Do(ctx, l, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
}

// invoke runs fn, converting a panic into a *PanicError so that a panicking
// task cannot take down the dispatch goroutine or be silently lost.
func invoke[R any](ctx context.Context, fn func(context.Context) (R, error)) (val R, err error) {
	normalReturn := false
	defer func() {
		if normalReturn {
			return
		}
		if v := recover(); v != nil {
			err = newPanicError(v)
		}
	}()
	val, err = fn(ctx)
	normalReturn = true
	return val, err
}
