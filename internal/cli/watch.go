package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle lets editors finish their write/rename dance before a reload.
const settle = 100 * time.Millisecond

// WatchFile calls reload once and then again after each change to path,
// until ctx is cancelled. Reload errors are logged and do not stop the loop
// so a broken document can be fixed in place.
func WatchFile(ctx context.Context, path string, logger *slog.Logger, reload func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: many editors replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	run := func() {
		if err := reload(); err != nil {
			logger.Error("Reload failed", "path", path, "err", err)
		}
	}
	run()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || filepath.Clean(event.Name) != abs {
				continue
			}
			logger.Debug("Change detected", "event", event.String())
			pending = time.After(settle)
		case <-pending:
			pending = nil
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		}
	}
}
