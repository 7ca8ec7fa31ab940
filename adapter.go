// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file provides a small adapter so the logger can be handed to external
// packages that expect a Printf-style interface, without exposing the
// concrete type.

package loglite

// Printer is the minimal logging interface for external packages.
type Printer interface {
	Printf(format string, args ...any)
}

// Adapter wraps a *Logger behind the Printer interface. The call site
// recorded in each line is the Printf caller, not the adapter.
type Adapter struct {
	l *Logger
}

// NewAdapter creates an Adapter; it panics on a nil Logger so that a
// misconfigured dependency fails at wiring time, not on the first log call.
func NewAdapter(l *Logger) *Adapter {
	if l == nil {
		panic("loglite: NewAdapter received nil *Logger")
	}
	return &Adapter{l: l}
}

// Printf implements Printer.
func (a *Adapter) Printf(format string, args ...any) {
	a.l.output(2, format, args...)
}
