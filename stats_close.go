// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file contains the shutdown protocol and runtime statistics. Close is
// the drain step of the lifecycle: after it returns successfully, every line
// accepted before it began has been written and the file handle is released.

package loglite

import (
	"fmt"
	"time"
)

// LoggerStats is a snapshot of a logger's counters.
type LoggerStats struct {
	// Enqueued is the total number of lines accepted by the entry points.
	Enqueued int64
	// Written is the total number of lines written to the sink.
	Written int64
	// Dropped counts log calls rejected after shutdown began.
	Dropped int64
	// WriteErrs counts failed write attempts, including retries.
	WriteErrs int64
	// HookErrs counts hook errors and panics.
	HookErrs int64
	// QueueLen is the number of lines currently waiting for the worker.
	QueueLen int
}

// Stats returns a snapshot of the global logger's statistics.
// Safe for concurrent use.
func Stats() LoggerStats {
	return StatsDetached(GlobalLogger())
}

// StatsDetached returns a snapshot of the statistics of a specific instance.
func StatsDetached(l *Logger) LoggerStats {
	if l == nil {
		return LoggerStats{}
	}
	return LoggerStats{
		Enqueued:  l.enqueuedCount.Load(),
		Written:   l.writtenCount.Load(),
		Dropped:   l.droppedCount.Load(),
		WriteErrs: l.writeErrCount.Load(),
		HookErrs:  l.hookErrCount.Load(),
		QueueLen:  l.queue.Len(),
	}
}

// Close gracefully shuts down the global logger, guaranteeing that every
// line accepted before the call is written before the file is released.
//
// The protocol is:
//  1. Stop accepting new lines and clear the worker's liveness flag.
//  2. Push the stop record, releasing a worker parked on an empty queue.
//  3. Wait for the worker's final drain, then close an owned sink.
//
// timeout bounds the wait in step 3; zero or negative waits indefinitely.
// Close is idempotent, and a no-op if the global logger was never touched.
func Close(timeout time.Duration) error {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l == nil {
		return nil
	}
	return closeLogger(l, timeout)
}

// CloseDetached gracefully shuts down a specific logger instance.
// See Close for the shutdown protocol.
func CloseDetached(l *Logger, timeout time.Duration) error {
	if l == nil {
		return nil
	}
	return closeLogger(l, timeout)
}

// closeLogger contains the core shutdown logic for any logger instance.
func closeLogger(l *Logger, timeout time.Duration) error {
	// First closer wins; every later call returns immediately.
	if !l.closed.TrySetTrue() {
		return nil
	}

	// Order matters: the flag must be cleared before the stop record is
	// pushed. A worker that wakes on a real record and misses the flag
	// simply processes one more cycle and stops on the stop record; the
	// push is what guarantees wake-up, not flag visibility timing.
	l.active.Store(false)
	l.queue.Push(record{stop: true})

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		l.closeSink()
		close(done)
	}()

	if timeout <= 0 {
		<-done
		return nil
	}
	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("loglite: close timed out after %s", timeout)
	}
}
