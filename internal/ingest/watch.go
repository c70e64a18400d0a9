package ingest

import (
	"context"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors a CSV file at path and re-ingests it each time the file is
// written. It runs until ctx is cancelled.
//
// If the file exists when Watch starts, it is ingested once immediately.
// A failed ingest (unreadable file, bad CSV) is logged and the previous
// generation remains active.
func Watch(ctx context.Context, path string, ing *Ingester) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("watch: ingesting on file change", "path", path)
	ingestFile(path, ing)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only react to write or create events. Editors and atomic
			// renames surface as fsnotify.Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			ingestFile(path, ing)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch: watcher error", "err", err)
		}
	}
}

func ingestFile(path string, ing *Ingester) {
	f, err := os.Open(path)
	if err != nil {
		slog.Error("watch: open failed — keeping previous generation",
			"path", path, "err", err)
		return
	}
	defer f.Close()

	if _, err := ing.Ingest(f); err != nil {
		slog.Error("watch: ingest failed — keeping previous generation",
			"path", path, "err", err)
	}
}
