/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climittest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeT struct {
	failed bool
}

func (f *fakeT) Errorf(format string, args ...interface{}) {}

func (f *fakeT) FailNow() {
	f.failed = true
}

type fakeSettler chan struct{}

func (s fakeSettler) Done() <-chan struct{} {
	return s
}

func TestRequireSettledWithin(t *testing.T) {
	settled := make(fakeSettler)
	close(settled)
	RequireSettledWithin(t, settled, 10*time.Millisecond)

	ft := &fakeT{}
	RequireSettledWithin(ft, make(fakeSettler), 10*time.Millisecond)
	require.True(t, ft.failed)
}

func TestRequireNeverSettles(t *testing.T) {
	RequireNeverSettles(t, make(fakeSettler), 10*time.Millisecond)

	settled := make(fakeSettler)
	close(settled)
	ft := &fakeT{}
	RequireNeverSettles(ft, settled, 10*time.Millisecond)
	require.True(t, ft.failed)
}

func TestGate(t *testing.T) {
	gate := NewGate()

	errc := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			errc <- gate.Task()(context.Background())
		}()
	}
	gate.RequireStartedWithin(t, 2, 3*time.Second)

	select {
	case <-errc:
		t.Fatal("task finished before the gate was released")
	case <-time.After(10 * time.Millisecond):
	}

	gate.Release()
	require.NoError(t, <-errc)
	require.NoError(t, <-errc)
}

func TestGate_TaskHonorsContext(t *testing.T) {
	gate := NewGate()
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		errc <- gate.Task()(ctx)
	}()
	gate.RequireStartedWithin(t, 1, 3*time.Second)

	cancel()
	require.ErrorIs(t, <-errc, context.Canceled)
}
