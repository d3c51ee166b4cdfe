package reload

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMtimeWatcherDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shader.frag")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	w := NewMtimeWatcher(path)
	if w.Changed() {
		t.Fatal("expected no change immediately after construction")
	}

	later := time.Now().Add(time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	if !w.Changed() {
		t.Fatal("expected Changed() to report true after the mtime advanced")
	}
	if w.Changed() {
		t.Fatal("expected Changed() to report false once the new mtime has been observed")
	}
}

func TestMtimeWatcherMissingFileIsNotModified(t *testing.T) {
	w := NewMtimeWatcher(filepath.Join(t.TempDir(), "does_not_exist.frag"))
	if w.Changed() {
		t.Fatal("a missing file must never report as changed")
	}
}

func TestFsWatcherReportsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shader.frag")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	fw, err := NewFsWatcher(log, path)
	if err != nil {
		t.Skipf("fsnotify unavailable in this environment: %v", err)
	}
	defer fw.Close()

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewriting fixture: %v", err)
	}

	select {
	case name := <-fw.Changed:
		if name != path {
			t.Errorf("Changed reported %q, want %q", name, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a write event")
	}
}
