/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package climit provides a concurrency-limiting task runner:
// no more than a configured number of submitted tasks execute at the same time,
// queued tasks start in strict submission order, and the number of running and
// queued tasks can be observed at any moment.
// It is meant for throttling access to finite resources (rate-limited APIs,
// file descriptors, memory) without building a custom scheduler.
package climit
