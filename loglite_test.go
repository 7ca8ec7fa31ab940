// Copyright 2025 Nguyen Thanh Phuong. All rights reserved.

package loglite

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// lineRe matches the documented line format:
// [YYYY-MM-DD HH:MM:SS.ffffff] [file:line] message
var lineRe = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{6}\] \[.+:\d+\] .*$`)

// readLines returns the non-terminated lines of the file at path.
func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := strings.TrimSuffix(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// blockingWriter is a test helper writer that blocks writes until unblocked.
type blockingWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	blockC chan struct{}
}

func newBlockingWriter() *blockingWriter {
	return &blockingWriter{blockC: make(chan struct{})}
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	<-w.blockC // Block until explicitly unblocked in test.
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *blockingWriter) unblock() {
	select {
	case <-w.blockC:
		// Already unblocked.
	default:
		close(w.blockC)
	}
}

func (w *blockingWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

// flakyWriter fails the first failN write attempts, then succeeds.
type flakyWriter struct {
	mu    sync.Mutex
	failN int
	buf   bytes.Buffer
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failN > 0 {
		w.failN--
		return 0, errors.New("transient write failure")
	}
	return w.buf.Write(p)
}

func (w *flakyWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestEndToEndNoLossAcrossShutdown(t *testing.T) {
	const producers = 10
	const perProducer = 100

	path := filepath.Join(t.TempDir(), "app.log")
	l, err := NewDetachedLogger(Config{FilePath: path})
	require.NoError(t, err)

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		p := p
		g.Go(func() error {
			for i := 0; i < perProducer; i++ {
				l.Logf("producer %d message #%d", p, i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.NoError(t, CloseDetached(l, 5*time.Second))

	lines := readLines(t, path)
	require.Len(t, lines, producers*perProducer)

	msgRe := regexp.MustCompile(`producer (\d+) message #(\d+)$`)
	seen := make(map[int]map[int]bool, producers)
	for _, line := range lines {
		require.Regexp(t, lineRe, line)
		m := msgRe.FindStringSubmatch(line)
		require.NotNil(t, m, "unexpected line: %q", line)
		p, _ := strconv.Atoi(m[1])
		i, _ := strconv.Atoi(m[2])
		if seen[p] == nil {
			seen[p] = make(map[int]bool, perProducer)
		}
		require.False(t, seen[p][i], "duplicate line for producer %d index %d", p, i)
		seen[p][i] = true
	}
	for p := 0; p < producers; p++ {
		require.Len(t, seen[p], perProducer, "producer %d lost lines", p)
	}

	st := StatsDetached(l)
	require.Equal(t, int64(producers*perProducer), st.Enqueued)
	require.Equal(t, int64(producers*perProducer), st.Written)
	require.Equal(t, 0, st.QueueLen)
}

func TestSentinelNeverWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := NewDetachedLogger(Config{FilePath: path})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		l.Logf("line %d", i)
	}
	// Even an empty message produces a non-empty line: the timestamp and
	// call-site prefix are always present.
	l.Logf("")
	require.NoError(t, CloseDetached(l, 2*time.Second))

	lines := readLines(t, path)
	require.Len(t, lines, 11)
	for _, line := range lines {
		require.NotEmpty(t, line)
		require.Regexp(t, lineRe, line)
	}
}

func TestProducersNotBlockedBySlowSink(t *testing.T) {
	bw := newBlockingWriter()
	l, err := NewDetachedLogger(Config{Output: bw})
	require.NoError(t, err)

	// Log while the sink is wedged; every call must return promptly because
	// producers only touch the queue, never the writer.
	produced := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			l.Logf("slow sink %d", i)
		}
		close(produced)
	}()
	select {
	case <-produced:
	case <-time.After(2 * time.Second):
		t.Fatal("Logf blocked on a wedged sink")
	}

	bw.unblock()
	require.NoError(t, CloseDetached(l, 5*time.Second))
	for i := 0; i < 20; i++ {
		require.Contains(t, bw.String(), "slow sink "+strconv.Itoa(i))
	}
}

func TestCloseTimesOutOnWedgedSink(t *testing.T) {
	bw := newBlockingWriter()
	l, err := NewDetachedLogger(Config{Output: bw})
	require.NoError(t, err)

	l.Logf("this write will hang")
	err = CloseDetached(l, 50*time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timed out")

	// Release the worker so the test does not leak a stuck goroutine.
	bw.unblock()
}

func TestCloseIdempotentAndDropsAfter(t *testing.T) {
	out := &bytes.Buffer{}
	l, err := NewDetachedLogger(Config{Output: out})
	require.NoError(t, err)

	l.Logf("one")
	l.Logf("two")
	require.NoError(t, CloseDetached(l, 2*time.Second))
	require.NoError(t, CloseDetached(l, 2*time.Second))

	// Calls after shutdown are dropped, never written.
	l.Logf("three")
	st := StatsDetached(l)
	require.Equal(t, int64(2), st.Written)
	require.GreaterOrEqual(t, st.Dropped, int64(1))
	require.Equal(t, 2, strings.Count(out.String(), "\n"))
}

func TestAppendModePreservesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l1, err := NewDetachedLogger(Config{FilePath: path})
	require.NoError(t, err)
	l1.Logf("first run")
	require.NoError(t, CloseDetached(l1, 2*time.Second))

	l2, err := NewDetachedLogger(Config{FilePath: path})
	require.NoError(t, err)
	l2.Logf("second run")
	require.NoError(t, CloseDetached(l2, 2*time.Second))

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "first run")
	require.Contains(t, lines[1], "second run")
}

func TestRetryRecoversTransientWriteFailure(t *testing.T) {
	fw := &flakyWriter{failN: 2}
	l, err := NewDetachedLogger(Config{
		Output: fw,
		Retry:  RetryPolicy{MaxRetries: 3, Backoff: time.Millisecond},
	})
	require.NoError(t, err)

	l.Logf("eventually written")
	require.NoError(t, CloseDetached(l, 2*time.Second))

	require.Contains(t, fw.String(), "eventually written")
	st := StatsDetached(l)
	require.Equal(t, int64(1), st.Written)
	require.Equal(t, int64(2), st.WriteErrs)
}

func TestHooksObserveEveryLineAndSurvivePanics(t *testing.T) {
	var mu sync.Mutex
	var events []Event
	collect := func(e Event) error {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
		return nil
	}
	explode := func(Event) error { panic("hook gone wrong") }

	out := &bytes.Buffer{}
	l, err := NewDetachedLogger(Config{
		Output: out,
		Hooks:  []HookFunc{explode, collect},
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		l.Logf("observed %d", i)
	}
	require.NoError(t, CloseDetached(l, 2*time.Second))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 5)
	for i, e := range events {
		require.Equal(t, "observed "+strconv.Itoa(i), e.Message)
		require.Contains(t, e.File, "loglite_test.go")
		require.NotZero(t, e.Line)
	}
	st := StatsDetached(l)
	require.Equal(t, int64(5), st.HookErrs)
	require.Equal(t, int64(5), st.Written)
}

func TestCallSiteCapture(t *testing.T) {
	out := &bytes.Buffer{}
	l, err := NewDetachedLogger(Config{Output: out})
	require.NoError(t, err)

	l.Logf("where am I")
	require.NoError(t, CloseDetached(l, 2*time.Second))
	require.Contains(t, out.String(), "loglite_test.go:")
}

func TestAdapterRecordsPrintfCaller(t *testing.T) {
	out := &bytes.Buffer{}
	l, err := NewDetachedLogger(Config{Output: out})
	require.NoError(t, err)

	var p Printer = NewAdapter(l)
	p.Printf("via adapter %d", 7)
	require.NoError(t, CloseDetached(l, 2*time.Second))

	require.Contains(t, out.String(), "via adapter 7")
	require.Contains(t, out.String(), "loglite_test.go:")
}

func TestGlobalLoggerPackageLevelLogf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global.log")
	require.NoError(t, InitWithConfig(Config{FilePath: path}))

	Logf("hello from %s", "global")
	require.NoError(t, Close(2*time.Second))

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	require.Regexp(t, lineRe, lines[0])
	require.Contains(t, lines[0], "hello from global")
}

func TestTextLineFormatterIsPure(t *testing.T) {
	f := &TextLineFormatter{}
	ts := time.Date(2025, 8, 25, 10, 31, 7, 412093000, time.UTC)
	want := "[2025-08-25 10:31:07.412093] [/src/app/main.go:42] payload ready"
	for i := 0; i < 3; i++ {
		require.Equal(t, want, f.FormatLine(ts, "/src/app/main.go", 42, "payload ready"))
	}
}
