/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climit

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

// Map submits iteratee(ctx, item, index) for every element of items through
// the limiter, so the overall concurrency stays bounded by the same limiter,
// and returns the results in input order regardless of completion order.
//
// Map fails fast: it returns as soon as any single task fails, with that
// task's error. Already-dispatched sibling tasks are not cancelled; they run
// to completion and their outcomes are discarded.
//
// Map must not be combined with ClearQueue on a limiter created without the
// RejectOnClear option: discarded tasks would leave Map blocked until ctx is done.
func Map[T, R any](
	ctx context.Context, l *Limiter, items []T, iteratee func(ctx context.Context, item T, index int) (R, error),
) ([]R, error) {
	futs := make([]*Future[R], len(items))
	for i, item := range items {
		futs[i] = Do(ctx, l, func(ctx context.Context) (R, error) {
			return iteratee(ctx, item, i)
		})
	}

	// The group context only aborts the waiting below, not the tasks themselves:
	// tasks are submitted with the caller's context and keep running after a
	// sibling's failure.
	results := make([]R, len(items))
	g, waitCtx := errgroup.WithContext(ctx)
	for i, fut := range futs {
		g.Go(func() error {
			val, err := fut.Wait(waitCtx)
			if err != nil {
				return err
			}
			results[i] = val
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MapSeq is Map over any finite sequence producer.
func MapSeq[T, R any](
	ctx context.Context, l *Limiter, seq iter.Seq[T], iteratee func(ctx context.Context, item T, index int) (R, error),
) ([]R, error) {
	var items []T
	for item := range seq {
		items = append(items, item)
	}
	return Map(ctx, l, items, iteratee)
}
