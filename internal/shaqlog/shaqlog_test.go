package shaqlog

import (
	"io"
	"log/slog"
	"testing"
)

func TestRingHandlerRetainsUpToCapacity(t *testing.T) {
	h := NewRingHandler(slog.NewTextHandler(io.Discard, nil), 3)
	log := slog.New(h)

	for i := 0; i < 5; i++ {
		log.Info("line")
	}
	if got := len(h.Records()); got != 3 {
		t.Fatalf("expected the ring to cap at 3 records, got %d", got)
	}
}

func TestRingHandlerKeepsMostRecent(t *testing.T) {
	h := NewRingHandler(slog.NewTextHandler(io.Discard, nil), 2)
	log := slog.New(h)

	log.Info("first")
	log.Info("second")
	log.Info("third")

	recs := h.Records()
	if len(recs) != 2 || recs[0].Message != "second" || recs[1].Message != "third" {
		t.Fatalf("got %v, want [second third]", recs)
	}
}

func TestRingHandlerClear(t *testing.T) {
	h := NewRingHandler(slog.NewTextHandler(io.Discard, nil), 4)
	slog.New(h).Error("boom")
	if len(h.Records()) != 1 {
		t.Fatal("expected one retained record before Clear")
	}
	h.Clear()
	if len(h.Records()) != 0 {
		t.Fatal("expected Clear to drop all retained records")
	}
}

func TestRingHandlerRecordsByLevel(t *testing.T) {
	h := NewRingHandler(slog.NewTextHandler(io.Discard, nil), 8)
	log := slog.New(h)
	log.Info("info line")
	log.Error("error line")
	log.Warn("warn line")

	errs := h.RecordsByLevel(slog.LevelError)
	if len(errs) != 1 || errs[0].Message != "error line" {
		t.Fatalf("got %v, want only the error-level record", errs)
	}
}

func TestRingHandlerForwardsToUnderlyingHandler(t *testing.T) {
	var buf countingWriter
	h := NewRingHandler(slog.NewTextHandler(&buf, nil), 4)
	slog.New(h).Info("hello")
	if buf.n == 0 {
		t.Fatal("expected the wrapped handler to still receive output")
	}
}

type countingWriter struct{ n int }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}
