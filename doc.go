// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite is a minimal asynchronous file logger.
//
// Application goroutines call Logf and return immediately: the line is
// rendered (timestamp, call site, message), pushed onto an unbounded
// thread-safe queue, and a single background worker performs every file
// write. On Close the worker drains the queue completely, so no line
// accepted before shutdown is ever lost.
//
// Main properties:
//   - Non-blocking producers: Logf never waits on disk I/O, only on the
//     queue's lock.
//   - Single consumer: one worker goroutine owns the file handle and writes
//     lines in FIFO order across all producers.
//   - Guaranteed drain: Close clears the liveness flag, pushes a stop record
//     to wake a parked worker, and waits for the final sweep before the file
//     is closed.
//   - Append-mode output: successive process runs extend the same file.
//   - Silent failure policy: write errors are retried per RetryPolicy,
//     counted in Stats, and reported to stderr; producers are never blocked
//     or notified.
//
// Basic usage:
//
//	if err := loglite.Init("app.log"); err != nil {
//		// handle startup failure
//	}
//	defer loglite.Close(5 * time.Second)
//
//	loglite.Logf("worker %d processed %d items", id, n)
//
// Each line is written as:
//
//	[2025-08-25 10:31:07.412093] [/path/to/caller.go:42] worker 3 processed 17 items
//
// Independent instances for tests or libraries are created with
// NewDetachedLogger and shut down with CloseDetached.
package loglite
