package refresh

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

// WatchFile calls onChange every time the file at the given path is written to or replaced with a
// newer version. It blocks until the context is canceled or the watcher fails.
//
// The file's directory is watched instead of the file itself, so that editors and tools that save
// by replacing the file are also picked up.
func WatchFile(ctx context.Context, file string, onChange func()) error {
	path, err := filepath.Abs(file)
	if err != nil {
		return wrap.Errorf(err, "failed to get absolute path of '%s'", file)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return wrap.Error(err, "failed to create file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return wrap.Errorf(err, "failed to watch directory of '%s'", path)
	}

	var lastModified time.Time
	if info, err := os.Stat(path); err == nil {
		lastModified = info.ModTime()
	}

	log.Info("watching input file for changes", slog.String("path", path))

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

			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if !info.ModTime().After(lastModified) {
				continue
			}
			lastModified = info.ModTime()

			log.Debug("input file changed", slog.String("event", event.Op.String()))
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return wrap.Errorf(err, "file watcher for '%s' failed", path)
		}
	}
}
