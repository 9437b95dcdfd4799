// Package testutil provides shared helpers for tests: a logger writing into
// the test log and contact backends with controllable completion order.
package testutil

import (
	"bytes"
	"log/slog"
	"sync/atomic"
	"testing"
)

// NewTestLogger returns a debug logger that writes to t.Log.
//
// Superseded navigations keep loading after a test returns, so records
// written once the test has finished are dropped instead of failing the run.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	w := &testWriter{t: t}
	t.Cleanup(func() { w.done.Store(true) })
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t    testing.TB
	done atomic.Bool
}

func (w *testWriter) Write(p []byte) (int, error) {
	if w.done.Load() {
		return len(p), nil
	}
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}
