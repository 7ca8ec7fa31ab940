// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Command loglite-demo is the process entry point for exercising the logger:
// it spawns N producer goroutines that each log M messages, joins them so the
// logger's teardown sees a quiescent producer population, then closes the
// logger and reports the run statistics.
package main

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/phuonguno98/loglite"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loglite-demo: %v\n", err)
		os.Exit(1)
	}

	err = loglite.InitWithConfig(loglite.Config{
		FilePath: cfg.LogFile,
		Timezone: cfg.Timezone,
		Retry: loglite.RetryPolicy{
			MaxRetries:  cfg.Retry.MaxRetries,
			Backoff:     cfg.Retry.Backoff,
			Jitter:      cfg.Retry.Jitter,
			Exponential: cfg.Retry.Exponential,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "loglite-demo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("starting %d producers x %d messages -> %s\n",
		cfg.Producers, cfg.Messages, cfg.LogFile)

	var g errgroup.Group
	for p := 0; p < cfg.Producers; p++ {
		p := p
		g.Go(func() error {
			for i := 0; i < cfg.Messages; i++ {
				loglite.Logf("producer %d message #%d", p, i)
			}
			return nil
		})
	}
	// Producers never fail; Wait is the join point before teardown.
	_ = g.Wait()

	if err := loglite.Close(cfg.CloseWait); err != nil {
		fmt.Fprintf(os.Stderr, "loglite-demo: %v\n", err)
		os.Exit(1)
	}

	st := loglite.Stats()
	fmt.Printf("done: enqueued=%d written=%d dropped=%d writeErrs=%d\n",
		st.Enqueued, st.Written, st.Dropped, st.WriteErrs)
}
