/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package climit

import "github.com/prometheus/client_golang/prometheus"

// MetricsCollector represents a collector of metrics to analyze how the limiter is used.
type MetricsCollector interface {
	// SetActiveCount sets the number of currently executing tasks.
	SetActiveCount(int)

	// SetPendingCount sets the number of tasks waiting in the queue.
	SetPendingCount(int)

	// IncSubmitted increments the total number of submitted tasks.
	IncSubmitted()

	// IncSucceeded increments the total number of tasks that completed without an error.
	IncSucceeded()

	// IncFailed increments the total number of tasks that completed with an error.
	IncFailed()

	// AddCleared increments the total number of tasks discarded by ClearQueue.
	AddCleared(int)
}

// PrometheusMetricsOpts represents options for PrometheusMetrics.
type PrometheusMetricsOpts struct {
	// Namespace is a namespace for metrics. It will be prepended to all metric names.
	Namespace string

	// ConstLabels is a set of labels that will be applied to all metrics.
	ConstLabels prometheus.Labels

	// CurriedLabelNames is a list of label names that will be curried with the provided labels.
	// See PrometheusMetrics.MustCurryWith method for more details.
	// Keep in mind that if this list is not empty,
	// PrometheusMetrics.MustCurryWith method must be called further with the same labels.
	// Otherwise, the collector will panic.
	CurriedLabelNames []string
}

// PrometheusMetrics represents Prometheus metrics for the limiter.
type PrometheusMetrics struct {
	ActiveTasks    *prometheus.GaugeVec
	PendingTasks   *prometheus.GaugeVec
	SubmittedTotal *prometheus.CounterVec
	SucceededTotal *prometheus.CounterVec
	FailedTotal    *prometheus.CounterVec
	ClearedTotal   *prometheus.CounterVec
}

// NewPrometheusMetrics creates a new instance of PrometheusMetrics with default options.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWithOpts(PrometheusMetricsOpts{})
}

// NewPrometheusMetricsWithOpts creates a new instance of PrometheusMetrics with the provided options.
func NewPrometheusMetricsWithOpts(opts PrometheusMetricsOpts) *PrometheusMetrics {
	activeTasks := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   opts.Namespace,
			Name:        "limiter_active_tasks",
			Help:        "Number of currently executing tasks.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	pendingTasks := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   opts.Namespace,
			Name:        "limiter_pending_tasks",
			Help:        "Number of tasks waiting in the queue.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	submittedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "limiter_tasks_submitted_total",
			Help:        "Number of submitted tasks.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	succeededTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "limiter_tasks_succeeded_total",
			Help:        "Number of tasks that completed without an error.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	failedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "limiter_tasks_failed_total",
			Help:        "Number of tasks that completed with an error.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	clearedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "limiter_tasks_cleared_total",
			Help:        "Number of queued tasks discarded by ClearQueue.",
			ConstLabels: opts.ConstLabels,
		},
		opts.CurriedLabelNames,
	)

	return &PrometheusMetrics{
		ActiveTasks:    activeTasks,
		PendingTasks:   pendingTasks,
		SubmittedTotal: submittedTotal,
		SucceededTotal: succeededTotal,
		FailedTotal:    failedTotal,
		ClearedTotal:   clearedTotal,
	}
}

// MustCurryWith curries the metrics collector with the provided labels.
func (pm *PrometheusMetrics) MustCurryWith(labels prometheus.Labels) *PrometheusMetrics {
	return &PrometheusMetrics{
		ActiveTasks:    pm.ActiveTasks.MustCurryWith(labels),
		PendingTasks:   pm.PendingTasks.MustCurryWith(labels),
		SubmittedTotal: pm.SubmittedTotal.MustCurryWith(labels),
		SucceededTotal: pm.SucceededTotal.MustCurryWith(labels),
		FailedTotal:    pm.FailedTotal.MustCurryWith(labels),
		ClearedTotal:   pm.ClearedTotal.MustCurryWith(labels),
	}
}

// MustRegister does registration of metrics collector in Prometheus and panics if any error occurs.
func (pm *PrometheusMetrics) MustRegister() {
	prometheus.MustRegister(
		pm.ActiveTasks,
		pm.PendingTasks,
		pm.SubmittedTotal,
		pm.SucceededTotal,
		pm.FailedTotal,
		pm.ClearedTotal,
	)
}

// Unregister cancels registration of metrics collector in Prometheus.
func (pm *PrometheusMetrics) Unregister() {
	prometheus.Unregister(pm.ActiveTasks)
	prometheus.Unregister(pm.PendingTasks)
	prometheus.Unregister(pm.SubmittedTotal)
	prometheus.Unregister(pm.SucceededTotal)
	prometheus.Unregister(pm.FailedTotal)
	prometheus.Unregister(pm.ClearedTotal)
}

// SetActiveCount sets the number of currently executing tasks.
func (pm *PrometheusMetrics) SetActiveCount(n int) {
	pm.ActiveTasks.With(nil).Set(float64(n))
}

// SetPendingCount sets the number of tasks waiting in the queue.
func (pm *PrometheusMetrics) SetPendingCount(n int) {
	pm.PendingTasks.With(nil).Set(float64(n))
}

// IncSubmitted increments the total number of submitted tasks.
func (pm *PrometheusMetrics) IncSubmitted() {
	pm.SubmittedTotal.With(nil).Inc()
}

// IncSucceeded increments the total number of tasks that completed without an error.
func (pm *PrometheusMetrics) IncSucceeded() {
	pm.SucceededTotal.With(nil).Inc()
}

// IncFailed increments the total number of tasks that completed with an error.
func (pm *PrometheusMetrics) IncFailed() {
	pm.FailedTotal.With(nil).Inc()
}

// AddCleared increments the total number of tasks discarded by ClearQueue.
func (pm *PrometheusMetrics) AddCleared(n int) {
	pm.ClearedTotal.With(nil).Add(float64(n))
}

type disabledMetrics struct{}

func (disabledMetrics) SetActiveCount(int)  {}
func (disabledMetrics) SetPendingCount(int) {}
func (disabledMetrics) IncSubmitted()       {}
func (disabledMetrics) IncSucceeded()       {}
func (disabledMetrics) IncFailed()          {}
func (disabledMetrics) AddCleared(int)      {}

var disabledMetricsCollector = disabledMetrics{}
