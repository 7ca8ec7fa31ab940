// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file implements the default line formatter. Formatting is a pure
// collaborator of the core: it turns a timestamp, call site, and rendered
// message into the final text line, nothing more.

package loglite

import (
	"bytes"
	"strconv"
	"time"
)

// timestampLayout matches the source format: date, time, fractional seconds.
const timestampLayout = "2006-01-02 15:04:05.000000"

// TextLineFormatter renders lines as
//
//	[2025-08-25 10:31:07.412093] [/path/to/caller.go:42] message
//
// A real formatted line always carries the timestamp and call-site prefix,
// so it is never empty.
type TextLineFormatter struct{}

// FormatLine implements LineFormatter.
func (f *TextLineFormatter) FormatLine(t time.Time, file string, line int, msg string) string {
	var buf bytes.Buffer
	buf.Grow(len(timestampLayout) + len(file) + len(msg) + 16)
	buf.WriteString("[")
	buf.WriteString(t.Format(timestampLayout))
	buf.WriteString("] [")
	buf.WriteString(file)
	buf.WriteString(":")
	buf.WriteString(strconv.Itoa(line))
	buf.WriteString("] ")
	buf.WriteString(msg)
	return buf.String()
}
