// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file implements the hand-off pipeline: producers enqueue rendered
// records, the single worker goroutine pops them and performs every write.
// The worker owns the sink exclusively, so writes need no extra locking.

package loglite

import (
	"fmt"
	"math/rand"
	"os"
	"time"
)

// enqueue hands a record to the worker and updates the acceptance counter.
func (l *Logger) enqueue(r record) {
	l.queue.Push(r)
	l.enqueuedCount.Add(1)
}

// writerLoop is the body of the worker goroutine. It runs in two phases:
//
//   - running: block in WaitAndPop; write every payload record. A stop
//     record, or observing the cleared liveness flag, ends the phase. The
//     flag alone is not relied on for wake-up; Close always pushes the stop
//     record, so a worker parked on an empty queue is released regardless of
//     when the flag store becomes visible.
//   - draining: TryPop until the queue reports empty, writing every payload
//     record pushed between the flag flip and the loop exit. Nothing
//     accepted before shutdown is lost.
//
// The goroutine then returns; Close waits on the WaitGroup before releasing
// the sink.
func (l *Logger) writerLoop() {
	defer l.wg.Done()

	for l.active.Load() {
		r := l.queue.WaitAndPop()
		if r.stop {
			break
		}
		l.process(r)
	}

	for {
		r, ok := l.queue.TryPop()
		if !ok {
			break
		}
		if !r.stop {
			l.process(r)
		}
	}
}

// process runs the hooks for a record and writes its line.
func (l *Logger) process(r record) {
	l.runHooks(r.ev)
	l.writeLine(r.line)
}

// writeLine appends one line to the sink, retrying per the configured policy.
// Failures are counted and reported to stderr; they never reach producers,
// and the worker keeps running on the next record.
func (l *Logger) writeLine(line string) {
	p := append([]byte(line), '\n')

	maxRetries := l.retry.MaxRetries
	for attempt := 0; attempt <= maxRetries; attempt++ {
		_, err := l.sink.Write(p)
		if err == nil {
			l.writtenCount.Add(1)
			return
		}

		l.writeErrCount.Add(1)
		fmt.Fprintf(os.Stderr, "loglite: write to %s failed: %v\n", l.sinkName, err)
		if attempt == maxRetries {
			return
		}

		delay := l.retry.Backoff
		if l.retry.Exponential {
			delay *= time.Duration(1 << attempt)
		}
		if l.retry.Jitter > 0 {
			delay += time.Duration(rand.Int63n(int64(l.retry.Jitter)))
		}
		time.Sleep(delay)
	}
}
