// Package testutil provides shared test helpers, currently a buffered slog
// handler for asserting on structured log output.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is a captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogBuffer captures slog records for assertions. Safe for concurrent use,
// since engine workers may log from multiple goroutines.
type LogBuffer struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLogger returns a logger writing into a fresh LogBuffer.
func NewLogger(t *testing.T) (*slog.Logger, *LogBuffer) {
	t.Helper()
	buf := &LogBuffer{}
	return slog.New(buf), buf
}

// Handle implements slog.Handler.
func (b *LogBuffer) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	return nil
}

// Enabled implements slog.Handler; every level is captured.
func (b *LogBuffer) Enabled(context.Context, slog.Level) bool { return true }

// WithAttrs implements slog.Handler.
func (b *LogBuffer) WithAttrs([]slog.Attr) slog.Handler { return b }

// WithGroup implements slog.Handler.
func (b *LogBuffer) WithGroup(string) slog.Handler { return b }

// Records returns a copy of the captured records.
func (b *LogBuffer) Records() []LogRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]LogRecord, len(b.records))
	copy(out, b.records)
	return out
}

// ContainsMessage reports whether any record's message contains substr.
func (b *LogBuffer) ContainsMessage(substr string) bool {
	for _, r := range b.Records() {
		if strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

// AssertMessage fails the test when no record at the given level contains
// the message substring.
func (b *LogBuffer) AssertMessage(t *testing.T, level slog.Level, substr string) {
	t.Helper()
	for _, r := range b.Records() {
		if r.Level == level && strings.Contains(r.Message, substr) {
			return
		}
	}
	t.Errorf("no %s log containing %q; captured: %+v", level, substr, b.Records())
}
