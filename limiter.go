/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climit

import (
	"container/list"
	"math"
	"sync"
)

// Unbounded can be passed as the concurrency value to effectively disable limiting.
const Unbounded = math.MaxInt

// task is one queued unit of work together with its settlement handles.
// A task is either executed or discarded, never both.
type task struct {
	exec    func() error // runs the invocation and settles the future
	discard func()       // settles the future with ErrCleared
}

// Limiter runs submitted tasks with a cap on how many of them execute concurrently.
// Tasks that cannot start right away are queued and dispatched in strict
// submission order as capacity frees up. Dispatch is event-driven: it is
// triggered by submission, by task completion, and by a concurrency increase,
// never by polling.
//
// All methods are safe for concurrent use.
type Limiter struct {
	mu            sync.Mutex
	queue         *list.List // of *task
	limit         int
	active        int
	rejectOnClear bool

	metricsCollector MetricsCollector
}

// Options represents options for the limiter.
type Options struct {
	// RejectOnClear makes ClearQueue settle the futures of discarded tasks
	// with ErrCleared. When false (the default), discarded futures are left
	// permanently unsettled and must not be waited on without a context.
	RejectOnClear bool

	// MetricsCollector is used to collect statistics about the limiter usage.
	// It can be nil, in this case, metrics will be disabled.
	MetricsCollector MetricsCollector
}

// New creates a new Limiter with the provided concurrency limit.
func New(concurrency int) (*Limiter, error) {
	return NewWithOpts(concurrency, Options{})
}

// NewWithOpts creates a new Limiter with the provided concurrency limit and options.
func NewWithOpts(concurrency int, opts Options) (*Limiter, error) {
	if concurrency <= 0 {
		return nil, &ValidationError{
			Param: "concurrency", Value: concurrency, Reason: "must be a positive integer"}
	}
	metricsCollector := opts.MetricsCollector
	if metricsCollector == nil {
		metricsCollector = disabledMetricsCollector
	}
	return &Limiter{
		queue:            list.New(),
		limit:            concurrency,
		rejectOnClear:    opts.RejectOnClear,
		metricsCollector: metricsCollector,
	}, nil
}

// Concurrency returns the current concurrency limit.
func (l *Limiter) Concurrency() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limit
}

// SetConcurrency changes the concurrency limit.
// An increase takes effect immediately: queued tasks are dispatched into the
// newly freed capacity without any further trigger. A decrease never
// interrupts already-running tasks; the new limit is enforced as they complete.
func (l *Limiter) SetConcurrency(n int) error {
	if n <= 0 {
		return &ValidationError{Param: "concurrency", Value: n, Reason: "must be a positive integer"}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limit = n
	l.dispatch()
	return nil
}

// ActiveCount returns the number of tasks currently executing.
func (l *Limiter) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// PendingCount returns the number of tasks waiting in the queue.
func (l *Limiter) PendingCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.Len()
}

// ClearQueue atomically removes all queued (not yet started) tasks.
// With the RejectOnClear option enabled, the future of every discarded task
// settles with ErrCleared; otherwise discarded futures are left permanently
// unsettled. In-flight tasks are unaffected and run to completion.
// Clearing an empty queue is a no-op.
func (l *Limiter) ClearQueue() {
	l.mu.Lock()
	discarded := make([]*task, 0, l.queue.Len())
	for e := l.queue.Front(); e != nil; e = e.Next() {
		discarded = append(discarded, e.Value.(*task))
	}
	l.queue.Init()
	l.metricsCollector.SetPendingCount(0)
	l.metricsCollector.AddCleared(len(discarded))
	l.mu.Unlock()

	if !l.rejectOnClear {
		return
	}
	for _, t := range discarded {
		t.discard()
	}
}

func (l *Limiter) enqueue(t *task) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue.PushBack(t)
	l.metricsCollector.IncSubmitted()
	l.metricsCollector.SetPendingCount(l.queue.Len())
	l.dispatch()
}

// dispatch starts queued tasks while free capacity remains.
// It must be called with l.mu held.
func (l *Limiter) dispatch() {
	for l.active < l.limit {
		front := l.queue.Front()
		if front == nil {
			return
		}
		l.queue.Remove(front)
		l.active++
		l.metricsCollector.SetPendingCount(l.queue.Len())
		l.metricsCollector.SetActiveCount(l.active)
		go l.run(front.Value.(*task))
	}
}

func (l *Limiter) run(t *task) {
	if err := t.exec(); err != nil {
		l.metricsCollector.IncFailed()
	} else {
		l.metricsCollector.IncSucceeded()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.active--
	l.metricsCollector.SetActiveCount(l.active)
	l.dispatch()
}
