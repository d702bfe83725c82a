// internal/defs/watcher.go
package defs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay coalesces bursts of writes (editors often write twice).
const DebounceDelay = 100 * time.Millisecond

// Watcher reports changes to the definition files of a directory.
type Watcher struct {
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

func NewWatcher(dir string, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve definitions dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{dir: abs, logger: logger}, nil
}

func (w *Watcher) Dir() string { return w.dir }

// Watch starts watching and returns a channel that receives a value after
// each settled change. The channel is closed when ctx ends or the watcher
// is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, fmt.Errorf("watcher is closed")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", w.dir, err)
	}
	w.watcher = fw

	ch := make(chan struct{}, 1)
	go w.loop(ctx, fw, ch)

	w.logger.Info("watching definitions", "dir", w.dir)
	return ch, nil
}

func isDefinitionFile(name string) bool {
	switch filepath.Base(name) {
	case enemiesFile, towersFile, bulletsFile, wavesFile:
		return true
	}
	return false
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, ch chan<- struct{}) {
	defer close(ch)
	defer fw.Close()

	var (
		debounce *time.Timer
		settled  <-chan time.Time
		changed  string
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !isDefinitionFile(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(DebounceDelay)
			} else {
				debounce.Reset(DebounceDelay)
			}
			settled = debounce.C
			changed = ev.Name

		case <-settled:
			settled = nil
			select {
			case ch <- struct{}{}:
				w.logger.Debug("definitions changed", "file", changed)
			default:
				// a reload is already pending
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("definitions watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.watcher != nil {
		err := w.watcher.Close()
		w.watcher = nil
		return err
	}
	return nil
}
