// Package logtest captures the records raytrace packages send to
// raytrace.Logger so tests can assert on them.
package logtest

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"testing"

	"github.com/gogpu/raytrace"
)

// Entry is one captured record. Attribute values are resolved; integers
// arrive as int64.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type store struct {
	mu      sync.Mutex
	entries []Entry
}

// Recorder is a slog.Handler that keeps every record at every level.
// Groups are flattened.
type Recorder struct {
	store *store
	attrs []slog.Attr
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{store: &store{}}
}

// Install makes a new Recorder the raytrace logger until tb ends.
func Install(tb testing.TB) *Recorder {
	tb.Helper()
	prev := raytrace.Logger()
	r := NewRecorder()
	raytrace.SetLogger(slog.New(r))
	tb.Cleanup(func() { raytrace.SetLogger(prev) })
	return r
}

func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	e := Entry{Level: rec.Level, Message: rec.Message, Attrs: make(map[string]any, len(r.attrs)+rec.NumAttrs())}
	for _, a := range r.attrs {
		e.Attrs[a.Key] = a.Value.Resolve().Any()
	}
	rec.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})

	r.store.mu.Lock()
	r.store.entries = append(r.store.entries, e)
	r.store.mu.Unlock()
	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Recorder{store: r.store, attrs: append(slices.Clip(r.attrs), attrs...)}
}

func (r *Recorder) WithGroup(string) slog.Handler { return r }

// Entries returns a copy of everything captured so far.
func (r *Recorder) Entries() []Entry {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return slices.Clone(r.store.entries)
}

// Find returns the first entry with the given message.
func (r *Recorder) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Message == msg {
			return e, true
		}
	}
	return Entry{}, false
}
