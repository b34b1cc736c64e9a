// Package watch re-runs a callback whenever a single file settles after a
// burst of changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before a change fires.
const DefaultDebounce = 200 * time.Millisecond

// File watches one path. The parent directory is watched rather than the
// file itself so editors that save by renaming a temp file over it keep
// triggering.
type File struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// NewFile creates a watcher for path.
func NewFile(path string, debounce time.Duration, logger *slog.Logger) *File {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &File{path: path, debounce: debounce, logger: logger}
}

// Run calls onChange once immediately and again after every settled change.
// Blocks until ctx is cancelled.
func (f *File) Run(ctx context.Context, onChange func()) error {
	abs, err := filepath.Abs(f.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", f.path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("watch target: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	f.logger.Info("watching file", "path", abs, "debounce", f.debounce)

	onChange()

	timer := time.NewTimer(f.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(f.debounce)

		case <-timer.C:
			// A rename away without a replacement leaves nothing to read.
			if _, err := os.Stat(abs); err != nil {
				f.logger.Debug("watched file missing after change", "path", abs)
				continue
			}
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("watcher error", "err", err)
		}
	}
}
