package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a content file when it changes on disk and hands every
// successfully parsed version to a callback. Invalid edits are logged and
// skipped.
type Watcher struct {
	path     string
	onChange func(*Content)
	log      *zap.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending time.Time
	stopCh  chan struct{}
	doneCh  chan struct{}
	closed  bool
}

// Watch starts watching path. The directory is watched rather than the
// file so editors that replace the file on save are still seen. onChange
// runs on the watcher goroutine.
func Watch(ctx context.Context, path string, log *zap.Logger, onChange func(*Content)) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w := &Watcher{
		path:     abs,
		onChange: onChange,
		log:      log.Named("content"),
		watcher:  fw,
		debounce: 100 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.run(ctx)
	w.log.Debug("watching content", zap.String("path", abs))
	return w, nil
}

// Close stops the watcher goroutine and waits for it to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(w.debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("content watcher", zap.Error(err))
		case <-tick.C:
			w.flush()
		}
	}
}

// flush reloads once the last event has settled for the debounce window.
func (w *Watcher) flush() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	c, err := Load(w.path)
	if err != nil {
		w.log.Warn("content reload failed", zap.Error(err))
		return
	}
	w.log.Info("content reloaded", zap.String("path", w.path))
	w.onChange(c)
}
