/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climit

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/acronis/go-climit/climittest"
)

func TestPrometheusMetrics(t *testing.T) {
	pm := NewPrometheusMetrics()
	pm.MustRegister()
	defer pm.Unregister()

	l, err := NewWithOpts(2, Options{RejectOnClear: true, MetricsCollector: pm})
	require.NoError(t, err)

	gate := climittest.NewGate()
	futs := make([]*Future[struct{}], 0, 4)
	for i := 0; i < 4; i++ {
		futs = append(futs, Submit(context.Background(), l, gate.Task()))
	}
	gate.RequireStartedWithin(t, 2, waitTimeout)

	require.Equal(t, float64(4), testutil.ToFloat64(pm.SubmittedTotal.With(nil)))
	require.Equal(t, float64(2), testutil.ToFloat64(pm.ActiveTasks.With(nil)))
	require.Equal(t, float64(2), testutil.ToFloat64(pm.PendingTasks.With(nil)))

	// Clearing the queue is accounted as cleared, not failed.
	l.ClearQueue()
	require.Equal(t, float64(2), testutil.ToFloat64(pm.ClearedTotal.With(nil)))
	require.Equal(t, float64(0), testutil.ToFloat64(pm.PendingTasks.With(nil)))

	gate.Release()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	for _, fut := range futs[:2] {
		_, err := fut.Wait(ctx)
		require.NoError(t, err)
	}
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(pm.ActiveTasks.With(nil)) == 0
	}, waitTimeout, tick)
	require.Equal(t, float64(2), testutil.ToFloat64(pm.SucceededTotal.With(nil)))
	require.Equal(t, float64(0), testutil.ToFloat64(pm.FailedTotal.With(nil)))

	errTask := errors.New("task failed")
	fut := Submit(context.Background(), l, func(ctx context.Context) error { return errTask })
	_, err = fut.Wait(ctx)
	require.Equal(t, errTask, err)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(pm.FailedTotal.With(nil)) == 1
	}, waitTimeout, tick)
}

func TestPrometheusMetricsWithOpts(t *testing.T) {
	pm := NewPrometheusMetricsWithOpts(PrometheusMetricsOpts{Namespace: "myservice"})
	pm.MustRegister()
	defer pm.Unregister()

	l, err := NewWithOpts(1, Options{MetricsCollector: pm})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	fut := Do(ctx, l, func(ctx context.Context) (int, error) { return 7, nil })
	_, err = fut.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, float64(1), testutil.ToFloat64(pm.SubmittedTotal.With(nil)))
}
