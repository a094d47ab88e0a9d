package slides3d

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the controls file at path whenever it changes, queueing the parsed values for the next Update.
// It watches the file's directory, as editors often save by replacing the file. Files that fail to parse are logged and skipped.
// Watching stops when ctx is cancelled.
func (c *Controls) Watch(ctx context.Context, path string, runtime RuntimeConfig) error {

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watching controls: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("watching controls: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching controls: %w", err)
	}

	log := runtime.logger().With("path", abs)

	go func() {

		defer watcher.Close()

		for {
			select {

			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				values, err := LoadControls(abs)
				if err != nil {
					log.Warn("ignoring controls file", "err", err)
					continue
				}
				log.Debug("controls reloaded")
				c.Queue(values)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("controls watcher", "err", err)

			}
		}

	}()

	return nil

}
