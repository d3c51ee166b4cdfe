// Package reload detects when shaq's project file or a shader's source file
// has changed on disk. Grounded on original_source/src/shaq_core.c's
// shaq_needs_reload (a busy-poll on the file's mtime) and shader.c's
// shader_was_modified, generalised to also support github.com/fsnotify/
// fsnotify as a push-based alternative, per SPEC_FULL.md's ambient-stack
// expansion: a live-editing sandbox in 2026 should not have to busy-poll
// when the OS can tell it.
package reload

import (
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// MtimeWatcher polls a single file's modification time, exactly like
// shaq_needs_reload/shader_was_modified. It never blocks and never errors
// out permanently: a missing file (mid-save, or briefly absent during an
// editor's atomic rename) just reports "not modified" until it reappears,
// matching shader_was_modified's explicit "don't immediately ruin
// everything for the user" comment.
type MtimeWatcher struct {
	path    string
	lastMod time.Time
}

// NewMtimeWatcher starts watching path, capturing its current mtime (if any)
// as the baseline.
func NewMtimeWatcher(path string) *MtimeWatcher {
	w := &MtimeWatcher{path: path}
	if fi, err := os.Stat(path); err == nil {
		w.lastMod = fi.ModTime()
	}
	return w
}

// Changed reports whether path's mtime has advanced since the last call
// that returned true, and updates the baseline when it has.
func (w *MtimeWatcher) Changed() bool {
	fi, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	if fi.ModTime().After(w.lastMod) {
		w.lastMod = fi.ModTime()
		return true
	}
	return false
}

// FsWatcher is a push-based alternative to MtimeWatcher for hosts that want
// to avoid a per-frame stat() call on every shader source file: it watches
// a set of paths and reports changes through a channel as they're reported
// by the OS.
type FsWatcher struct {
	w       *fsnotify.Watcher
	Changed chan string
	log     *slog.Logger
}

// NewFsWatcher creates a watcher over paths. The caller must call Close
// when done.
func NewFsWatcher(log *slog.Logger, paths ...string) (*FsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			log.Warn("reload: could not watch path", "path", p, "err", err)
		}
	}
	fw := &FsWatcher{w: w, Changed: make(chan string, 16), log: log}
	go fw.run()
	return fw, nil
}

func (fw *FsWatcher) run() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				close(fw.Changed)
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				fw.Changed <- ev.Name
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.log.Warn("reload: watcher error", "err", err)
		}
	}
}

// Add starts watching an additional path (e.g. a shader source file named by
// a newly-parsed project entry).
func (fw *FsWatcher) Add(path string) error { return fw.w.Add(path) }

// Close stops the watcher.
func (fw *FsWatcher) Close() error { return fw.w.Close() }
