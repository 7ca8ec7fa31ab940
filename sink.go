// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file opens and releases the output file. The handle is opened once in
// append mode, so successive process runs extend the same history, and it is
// closed only after the worker's final drain.

package loglite

import "os"

// openFileSink opens path for appending, creating it if needed.
func openFileSink(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// closeSink releases an owned sink. Called exactly once, by Close, after the
// worker goroutine has returned; at that point no writes can follow.
func (l *Logger) closeSink() {
	if l.closer == nil {
		return
	}
	if err := l.closer.Close(); err != nil {
		l.writeErrCount.Add(1)
	}
	l.closer = nil
}
