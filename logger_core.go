// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file contains the log entry points. They capture the call site,
// render the line, and enqueue it; the caller never waits on disk I/O and is
// never notified of a write failure.

package loglite

import (
	"fmt"
	"runtime"
	"time"
)

// Logf renders a line containing a timestamp, the caller's file:line, and the
// message produced by interpolating args into format, then queues it for the
// worker. It returns immediately; the only wait a caller can experience is
// the queue's lock, never the file write.
func (l *Logger) Logf(format string, args ...any) {
	l.output(2, format, args...)
}

// Logf logs through the global logger, constructing it on first use.
func Logf(format string, args ...any) {
	l := GlobalLogger()
	if l == nil {
		return
	}
	l.output(2, format, args...)
}

// output is the central logging method shared by the entry points.
// calldepth is the number of stack frames between the user's call site and
// runtime.Caller, in the manner of the standard log package.
func (l *Logger) output(calldepth int, format string, args ...any) {
	// Fast path: once shutdown has begun, accept nothing more. Racing calls
	// are counted as dropped; the no-loss guarantee covers lines accepted
	// before Close flipped the flag.
	if l.closed.Load() {
		l.droppedCount.Add(1)
		return
	}

	now := time.Now().In(l.loc)
	_, file, line, ok := runtime.Caller(calldepth)
	if !ok {
		file, line = "???", 0
	}
	msg := fmt.Sprintf(format, args...)

	ev := Event{Time: now, File: file, Line: line, Message: msg}
	l.enqueue(record{ev: ev, line: l.formatter.FormatLine(now, file, line, msg)})
}
