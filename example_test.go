/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climit

import (
	"context"
	"fmt"
	"log"
)

func Example() {
	// Allow at most 2 tasks to execute at the same time.
	limiter, err := New(2)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// Submit a single task. Do returns immediately with a future.
	fut := Do(ctx, limiter, func(ctx context.Context) (string, error) {
		return "hello", nil
	})
	greeting, err := fut.Wait(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(greeting)

	// Map runs the iteratee for every input through the same limiter
	// and returns the results in input order.
	squares, err := Map(ctx, limiter, []int{1, 2, 3, 4}, func(ctx context.Context, n, _ int) (int, error) {
		return n * n, nil
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(squares)

	// Output:
	// hello
	// [1 4 9 16]
}

func ExampleWrap() {
	// Bind a limiter with concurrency 3 permanently to one function.
	fetchLen, err := Wrap(func(ctx context.Context, s string) (int, error) {
		return len(s), nil
	}, 3)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	n, err := fetchLen(ctx, "throttled").Wait(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(n)

	// Output:
	// 9
}
