// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package loglite provides an in-process asynchronous logging facility.
// This file handles the initialization of the global logger and the creation
// of new, independent logger instances.

package loglite

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultFilePath is the output file used when the global logger is
// constructed lazily, before any explicit Init call.
const DefaultFilePath = "log.txt"

var (
	globalLogger   *Logger
	globalMu       sync.RWMutex
	ensureInitOnce sync.Once
)

// Init initializes the global logger writing to the given file path, with
// default settings for everything else. For full control over the
// configuration, use InitWithConfig.
func Init(filePath string) error {
	return InitWithConfig(Config{FilePath: filePath})
}

// InitWithConfig initializes the global logger using the provided Config.
// It returns an error if the output file cannot be opened. The previous
// global logger, if any, is not closed; ReinitGlobal handles replacement.
func InitWithConfig(cfg Config) error {
	l, err := NewDetachedLogger(cfg)
	if err != nil {
		return err
	}
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
	return nil
}

// ReinitGlobal safely replaces the current global logger with a new one built
// from cfg, then gracefully closes the old one within closeOldTimeout so that
// every line it accepted still reaches its file.
func ReinitGlobal(cfg Config, closeOldTimeout time.Duration) (*Logger, error) {
	newLogger, err := NewDetachedLogger(cfg)
	if err != nil {
		return nil, err
	}
	globalMu.Lock()
	oldLogger := globalLogger
	globalLogger = newLogger
	globalMu.Unlock()

	if oldLogger != nil {
		if cerr := closeLogger(oldLogger, closeOldTimeout); cerr != nil {
			return newLogger, cerr
		}
	}
	return newLogger, nil
}

// NewDetachedLogger creates and returns a new, independent Logger instance
// from the provided configuration. A detached logger does not affect the
// global one and is useful for tests or for libraries that need their own
// output file. The caller owns the instance and must call CloseDetached.
func NewDetachedLogger(cfg Config) (*Logger, error) {
	l, err := newLoggerFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	l.start()
	return l, nil
}

// GlobalLogger returns the shared global logger instance. If it has not been
// initialized via Init or InitWithConfig, it is constructed on first call
// with default settings, writing to DefaultFilePath. Safe for concurrent use;
// construction happens exactly once.
func GlobalLogger() *Logger {
	ensureInit()
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// newLoggerFromConfig is the core factory function for creating a Logger.
// It applies defaults, opens the sink, and wires the queue; the worker is
// started separately by start so the struct is fully built first.
func newLoggerFromConfig(cfg Config) (*Logger, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil || loc == nil {
		loc = time.UTC
	}
	formatter := cfg.Formatter
	if formatter == nil {
		formatter = &TextLineFormatter{}
	}
	if cfg.Retry.MaxRetries < 0 {
		cfg.Retry.MaxRetries = 0
	}

	l := &Logger{
		queue:     NewQueue[record](),
		formatter: formatter,
		loc:       loc,
		retry:     cfg.Retry,
		hooks:     cfg.Hooks,
	}
	l.active.Store(true)

	switch {
	case cfg.Output != nil:
		l.sink = cfg.Output
		l.sinkName = "output"
		if cfg.OwnOutput {
			if c, ok := cfg.Output.(io.Closer); ok {
				l.closer = c
			}
		}
	case cfg.FilePath != "":
		f, err := openFileSink(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("loglite: open sink: %w", err)
		}
		l.sink = f
		l.sinkName = cfg.FilePath
		l.closer = f
	default:
		return nil, fmt.Errorf("loglite: config needs FilePath or Output")
	}
	return l, nil
}

// start launches the single worker goroutine that drains the queue.
func (l *Logger) start() {
	l.wg.Add(1)
	go l.writerLoop()
}

// ensureInit guarantees that the global logger is initialized, so that the
// package-level Logf works with zero configuration. If the lazy default
// sink cannot be opened the failure is reported to stderr and lines are
// dropped, never surfaced to producers.
func ensureInit() {
	ensureInitOnce.Do(func() {
		globalMu.RLock()
		alreadyInitialized := globalLogger != nil
		globalMu.RUnlock()
		if alreadyInitialized {
			return
		}
		if err := Init(DefaultFilePath); err != nil {
			fmt.Fprintf(os.Stderr, "loglite: default init failed: %v\n", err)
		}
	})
}
