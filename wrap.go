/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climit

import "context"

// Wrap builds a new Limiter bound permanently to fn and returns a directly
// callable wrapper: each call submits fn with the provided argument and
// returns a Future for its result. Functions taking several arguments can be
// wrapped with a struct argument or adapted with a closure.
func Wrap[T, R any](
	fn func(context.Context, T) (R, error), concurrency int,
) (func(context.Context, T) *Future[R], error) {
	return WrapWithOpts(fn, concurrency, Options{})
}

// WrapWithOpts is a configurable version of Wrap.
func WrapWithOpts[T, R any](
	fn func(context.Context, T) (R, error), concurrency int, opts Options,
) (func(context.Context, T) *Future[R], error) {
	if fn == nil {
		return nil, &ValidationError{Param: "fn", Value: nil, Reason: "must not be nil"}
	}
	l, err := NewWithOpts(concurrency, opts)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, arg T) *Future[R] {
		return Do(ctx, l, func(ctx context.Context) (R, error) {
			return fn(ctx, arg)
		})
	}, nil
}
