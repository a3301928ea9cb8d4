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

// DefaultSettle is how long Run waits for further events before re-running.
const DefaultSettle = 200 * time.Millisecond

// Run monitors path for changes and calls fn after each burst of writes.
// It runs until ctx is cancelled. An error from fn is logged, not returned.
//
// The parent directory is watched rather than the file, so replacing the
// file by rename keeps being noticed.
func Run(ctx context.Context, path string, settle time.Duration, fn func(context.Context) error) error {
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("watch: watching input for changes", "path", path)

	// pending fires once events have been quiet for settle.
	pending := time.NewTimer(settle)
	if !pending.Stop() {
		<-pending.C
	}
	defer pending.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !pending.Stop() {
				select {
				case <-pending.C:
				default:
				}
			}
			pending.Reset(settle)

		case <-pending.C:
			if err := fn(ctx); err != nil {
				slog.Error("watch: re-run failed, keeping previous output",
					"path", path, "err", err)
				continue
			}
			slog.Info("watch: re-run complete", "path", path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch: watcher error", "err", err)
		}
	}
}
