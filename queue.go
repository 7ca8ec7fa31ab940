// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file implements the unbounded thread-safe FIFO queue that hands items
// from arbitrarily many producer goroutines to the consumer. Insertion never
// blocks on capacity, which is what the no-loss contract of the logger
// requires; a bounded channel would either block or drop under load.

package loglite

import "sync"

// Queue is an unbounded FIFO buffer safe for concurrent use by any number of
// producers and consumers. Items are delivered in the order their Push calls
// acquired the internal lock.
//
// The zero value is not ready for use; create instances with NewQueue.
type Queue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []T
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends v to the tail of the queue and wakes one goroutine blocked in
// WaitAndPop. It never blocks the caller beyond lock contention.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.cond.Signal()
	q.mu.Unlock()
}

// WaitAndPop removes and returns the head of the queue, blocking until an
// item is available. The emptiness predicate is re-checked after every wake,
// so spurious wake-ups are harmless. If no producer ever pushes, the caller
// blocks forever; the logger relies on a stop record to guarantee wake-up
// during shutdown.
func (q *Queue[T]) WaitAndPop() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	return q.popLocked()
}

// TryPop removes and returns the head of the queue if one is available.
// It returns immediately with ok == false when the queue is empty.
func (q *Queue[T]) TryPop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return v, false
	}
	return q.popLocked(), true
}

// Len returns the number of items currently buffered.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// popLocked removes the head item. Callers must hold q.mu and have verified
// the queue is non-empty.
func (q *Queue[T]) popLocked() T {
	var zero T
	v := q.items[0]
	q.items[0] = zero // release the reference for GC
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// Reset the backing array so a long burst does not pin memory.
		q.items = nil
	}
	return v
}
