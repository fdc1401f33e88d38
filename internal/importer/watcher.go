package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-imports markdown files below a root when they change.
type Watcher struct {
	importer *Importer
	root     string
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a Watcher with watches on root and all its non-hidden
// subdirectories. Events are only processed once Run is called.
func (i *Importer) NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{importer: i, root: root, watcher: fw}
	if err := w.addWatches(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Watch imports changes below root until ctx is done.
func (i *Importer) Watch(ctx context.Context, root string) error {
	w, err := i.NewWatcher(root)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func (w *Watcher) addWatches(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Run processes file events until ctx is done. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		_ = w.watcher.Close()
	}()

	logger := w.importer.getLogger(ctx)
	logger.InfoContext(ctx, "watching for changes", "root", w.root)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	logger := w.importer.getLogger(ctx)
	path := event.Name

	relPath, err := relativePath(w.root, path)
	if err != nil {
		logger.WarnContext(ctx, "ignoring event outside root", "path", path, "error", err)
		return
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			if isMarkdown(path) {
				if err := w.importer.RemoveFile(ctx, relPath); err != nil {
					logger.ErrorContext(ctx, "failed to remove page", "rel_path", relPath, "error", err)
				}
			}
			return
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		return
	}

	if info.IsDir() {
		if event.Has(fsnotify.Create) && !skipDir(info.Name()) {
			if err := w.addWatches(path); err != nil {
				logger.WarnContext(ctx, "failed to watch new directory", "path", path, "error", err)
			}
		}
		return
	}

	if !isMarkdown(path) {
		return
	}

	if _, err := w.importer.ImportFile(ctx, w.root, relPath); err != nil {
		logger.ErrorContext(ctx, "failed to import file", "rel_path", relPath, "error", err)
	}
}
