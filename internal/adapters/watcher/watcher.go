// Package watcher reports changes to documentation sources.
package watcher

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/docmk/internal/adapters/fs"
	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/docmk/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify.
//
// Writes that leave a file's content unchanged and editor scratch files are
// dropped, so saving without edits does not trigger a rebuild.
type Watcher struct {
	walker *fs.Walker
	cache  *ContentCache
	logger ports.Logger

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	root      string
	skip      []string
	events    chan ports.WatchEvent
}

// NewWatcher creates a new Watcher.
func NewWatcher(walker *fs.Walker, hasher *fs.Hasher, logger ports.Logger) *Watcher {
	return &Watcher{
		walker: walker,
		cache:  NewContentCache(hasher),
		logger: logger,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}
}

// Start begins watching root recursively, leaving out the directories in skip.
func (w *Watcher) Start(ctx context.Context, root string, skip []string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}

	w.mu.Lock()
	w.fsWatcher = fsWatcher
	w.root = root
	w.skip = skip
	w.mu.Unlock()

	for dir := range w.walker.WalkDirs(root, skip) {
		if err := fsWatcher.Add(dir); err != nil {
			_ = fsWatcher.Close()
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherStartFailed.Error()), "path", dir)
		}
	}

	go w.processEvents(ctx, fsWatcher)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}
	err := w.fsWatcher.Close()
	w.fsWatcher = nil
	return err
}

// Events returns an iterator of file system events. It ends when the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context, fsWatcher *fsnotify.Watcher) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent, ok := w.convertEvent(event)
			if !ok {
				continue
			}

			if watchEvent.Operation == ports.OpCreate {
				w.addDirectory(fsWatcher, watchEvent.Path)
			}

			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: " + err.Error())
		}
	}
}

// addDirectory starts watching a newly created directory and its subtree.
func (w *Watcher) addDirectory(fsWatcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	for dir := range w.walker.WalkDirs(path, nil) {
		if w.walker.ShouldSkip(w.root, dir, w.skip) {
			continue
		}
		_ = fsWatcher.Add(dir)
	}
}

// convertEvent maps an fsnotify event, reporting false for events to drop.
func (w *Watcher) convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	path := event.Name
	if isScratchFile(filepath.Base(path)) {
		return ports.WatchEvent{}, false
	}
	if path != w.root && w.walker.ShouldSkip(w.root, path, w.skip) {
		return ports.WatchEvent{}, false
	}

	switch {
	case event.Has(fsnotify.Write):
		if !w.cache.Changed(path) {
			return ports.WatchEvent{}, false
		}
		return ports.WatchEvent{Path: path, Operation: ports.OpWrite}, true
	case event.Has(fsnotify.Create):
		w.cache.Changed(path)
		return ports.WatchEvent{Path: path, Operation: ports.OpCreate}, true
	case event.Has(fsnotify.Remove):
		w.cache.Forget(path)
		return ports.WatchEvent{Path: path, Operation: ports.OpRemove}, true
	case event.Has(fsnotify.Rename):
		w.cache.Forget(path)
		return ports.WatchEvent{Path: path, Operation: ports.OpRename}, true
	default:
		return ports.WatchEvent{}, false
	}
}

// isScratchFile reports editor backup, swap and lock files.
func isScratchFile(name string) bool {
	switch {
	case strings.HasSuffix(name, "~"),
		strings.HasSuffix(name, ".swp"),
		strings.HasSuffix(name, ".swx"),
		strings.HasPrefix(name, ".#"),
		strings.HasPrefix(name, "#") && strings.HasSuffix(name, "#"),
		name == "4913":
		return true
	default:
		return false
	}
}
