/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climit

import (
	"bytes"
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrCleared is delivered to futures of tasks that were discarded from the queue
// by ClearQueue when the RejectOnClear option is enabled.
// It lets callers tell "never ran" apart from "ran and failed".
var ErrCleared = errors.New("task was cleared from the queue before starting")

// ValidationError is returned when a constructor or property argument is invalid.
// It is always returned synchronously at the call site, never through a future.
type ValidationError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Param, e.Value, e.Reason)
}

// PanicError is an error that represents a panic value and stack trace
// captured from a task invocation.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("%v\n\n%s", p.Value, p.Stack)
}

func (p *PanicError) Unwrap() error {
	err, ok := p.Value.(error)
	if !ok {
		return nil
	}
	return err
}

func newPanicError(v interface{}) error {
	stack := debug.Stack()

	// The first line of the stack trace is of the form "goroutine N [status]:"
	// but by the time the panic reaches the caller the goroutine may no longer
	// exist and its status will have changed. Trim out the misleading line.
	if line := bytes.IndexByte(stack, '\n'); line >= 0 {
		stack = stack[line+1:]
	}
	return &PanicError{Value: v, Stack: stack}
}
