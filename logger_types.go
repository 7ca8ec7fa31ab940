// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file defines the core data structures and types used throughout the
// library, including the Config struct for initialization.

package loglite

import (
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// LineFormatter converts one log event into the text line that will be
// written to the sink. Implementations must be pure: no side effects, no
// retained state between calls. The returned line must not contain the
// trailing newline; the worker appends exactly one per line.
type LineFormatter interface {
	FormatLine(t time.Time, file string, line int, msg string) string
}

// RetryPolicy configures the retry behavior for transient errors during log
// writes. The zero value disables retries.
type RetryPolicy struct {
	// MaxRetries is the maximum number of times to retry a failed write.
	MaxRetries int
	// Backoff is the base duration to wait before the first retry.
	Backoff time.Duration
	// Jitter adds a random duration up to this value to the backoff.
	Jitter time.Duration
	// Exponential, if true, doubles the backoff after each failed retry.
	Exponential bool
}

// Event carries the data of a single log call, as seen by hooks.
type Event struct {
	Time    time.Time // when the log call was made
	File    string    // caller's source file
	Line    int       // caller's source line
	Message string    // rendered user message, without the line prefix
}

// HookFunc is an observer invoked on the worker goroutine for every event,
// before the line is written. Hook errors and panics are counted but never
// propagated; a hook must not call back into the logger that runs it.
type HookFunc func(e Event) error

// Config is the central configuration struct for creating a Logger instance.
// It is passed to InitWithConfig or NewDetachedLogger.
type Config struct {
	// FilePath is the path of the output file. It is opened once in append
	// mode when the logger is constructed, owned exclusively by the logger,
	// and closed after the final drain. Required unless Output is set.
	FilePath string
	// Output overrides FilePath with an arbitrary writer. The logger does
	// not close it unless OwnOutput is set.
	Output io.Writer
	// OwnOutput transfers ownership of Output to the logger, which will
	// close it on shutdown if it implements io.Closer.
	OwnOutput bool
	// Formatter renders each line. Defaults to TextLineFormatter.
	Formatter LineFormatter
	// Timezone is the IANA time zone name for timestamps (e.g. "UTC").
	// Defaults to "UTC" if empty or invalid.
	Timezone string
	// Retry configures the retry policy for failed writes. Disabled by
	// default; see RetryPolicy.
	Retry RetryPolicy
	// Hooks is a slice of observers invoked for each event.
	Hooks []HookFunc
}

// record is the queue element. Exactly one stop record is pushed per logger
// lifetime, by Close, to unblock a worker parked in WaitAndPop; it carries no
// payload and is never written. The stop marker is a tagged field rather than
// a reserved line value, so an empty payload could never be mistaken for it.
type record struct {
	ev   Event
	line string
	stop bool
}

// Logger accepts formatted text from any goroutine, buffers it, and
// guarantees it reaches the sink before Close returns. Create instances with
// InitWithConfig or NewDetachedLogger, or use the lazily constructed global
// instance via GlobalLogger and the package-level Logf.
type Logger struct {
	queue *Queue[record]
	wg    sync.WaitGroup // tracks the single worker goroutine

	// active is read by the worker on every blocking cycle and cleared
	// exactly once by Close. closed additionally gates producers and makes
	// Close idempotent.
	active atomicBool
	closed atomicBool

	sink     io.Writer
	sinkName string
	closer   io.Closer // non-nil only when the logger owns the sink

	formatter LineFormatter
	loc       *time.Location
	retry     RetryPolicy
	hooks     []HookFunc

	// Statistics.
	enqueuedCount atomicI64
	writtenCount  atomicI64
	droppedCount  atomicI64
	writeErrCount atomicI64
	hookErrCount  atomicI64
}

// --- Atomic wrappers ---

// atomicBool provides atomic operations for a boolean.
type atomicBool struct{ v uint32 }

func (a *atomicBool) Load() bool       { return atomic.LoadUint32(&a.v) != 0 }
func (a *atomicBool) Store(val bool)   { atomic.StoreUint32(&a.v, b32(val)) }
func (a *atomicBool) TrySetTrue() bool { return atomic.CompareAndSwapUint32(&a.v, 0, 1) }

// atomicI64 provides atomic operations for an int64.
type atomicI64 struct{ v int64 }

func (a *atomicI64) Add(delta int64) { atomic.AddInt64(&a.v, delta) }
func (a *atomicI64) Load() int64     { return atomic.LoadInt64(&a.v) }

// b32 converts a boolean to a uint32 (0 or 1).
func b32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
