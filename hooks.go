// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file runs the optional observer hooks. Hooks execute synchronously on
// the worker goroutine, before the line is written, and are panic-safe: a
// failing or panicking hook is counted and skipped, never fatal.

package loglite

import (
	"fmt"
	"os"
)

// runHooks executes every configured hook for the event.
func (l *Logger) runHooks(ev Event) {
	for _, hk := range l.hooks {
		l.runHook(hk, ev)
	}
}

// runHook executes a single hook with panic recovery.
func (l *Logger) runHook(hk HookFunc, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			l.hookErrCount.Add(1)
			fmt.Fprintf(os.Stderr, "loglite: hook panic: %v\n", r)
		}
	}()
	if err := hk(ev); err != nil {
		l.hookErrCount.Add(1)
	}
}
