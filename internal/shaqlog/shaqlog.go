// Package shaqlog wraps log/slog with a bounded ring-buffer handler so the
// most recent info/error lines can be displayed in the GUI's log window,
// same purpose as original_source/src/log.c's info_log/error_log arrays
// (there backed by two fixed 128KiB char arrays, here by a ring of
// structured records that never grows).
package shaqlog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Record is one retained log line, readable by the GUI's log panel.
type Record struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// RingHandler is an slog.Handler that forwards to an underlying handler (for
// stdout/stderr output, same as log_print_info_log/log_print_error_log) and
// additionally retains the last Capacity records for UI display, replacing
// log_get_info_log/log_get_error_log's whole-buffer string return.
type RingHandler struct {
	next     slog.Handler
	mu       *sync.Mutex
	buf      *[]Record
	capacity int
}

// NewRingHandler wraps next (typically slog.NewTextHandler(os.Stderr, ...))
// and retains up to capacity records.
func NewRingHandler(next slog.Handler, capacity int) *RingHandler {
	return &RingHandler{
		next:     next,
		mu:       &sync.Mutex{},
		buf:      &[]Record{},
		capacity: capacity,
	}
}

func (h *RingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	*h.buf = append(*h.buf, Record{Time: r.Time, Level: r.Level, Message: r.Message})
	if len(*h.buf) > h.capacity {
		*h.buf = (*h.buf)[len(*h.buf)-h.capacity:]
	}
	h.mu.Unlock()
	return h.next.Handle(ctx, r)
}

func (h *RingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RingHandler{next: h.next.WithAttrs(attrs), mu: h.mu, buf: h.buf, capacity: h.capacity}
}

func (h *RingHandler) WithGroup(name string) slog.Handler {
	return &RingHandler{next: h.next.WithGroup(name), mu: h.mu, buf: h.buf, capacity: h.capacity}
}

// Records returns a snapshot of retained records, oldest first.
func (h *RingHandler) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, len(*h.buf))
	copy(out, *h.buf)
	return out
}

// Clear drops all retained records, mirroring log_clear_all_logs: shaq calls
// this on every project reload so stale errors from a previous revision of
// the project file don't linger in the GUI panel.
func (h *RingHandler) Clear() {
	h.mu.Lock()
	*h.buf = (*h.buf)[:0]
	h.mu.Unlock()
}

// RecordsByLevel filters Records to at-or-above min, e.g. slog.LevelError
// only, matching log_get_error_log's error-only view.
func (h *RingHandler) RecordsByLevel(min slog.Level) []Record {
	all := h.Records()
	out := make([]Record, 0, len(all))
	for _, rec := range all {
		if rec.Level >= min {
			out = append(out, rec)
		}
	}
	return out
}
