package descriptions

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/songzhibin97/prommetrics/pkg/log"
	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

// Target receives reloaded tables. The Registry of
// pkg/metrics/driver/prometheus satisfies it.
type Target interface {
	SetDescriptions(d metrics.Descriptions)
}

// Watcher loads a description file into a Target and reloads it whenever
// the file is written, created or renamed into place. A reload that fails
// to parse is logged and the previous table stays in effect.
type Watcher struct {
	path   string
	target Target
	logger log.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	done     chan struct{}
	wg       sync.WaitGroup
	onReload func(metrics.Descriptions, error)
}

// NewWatcher creates a watcher for path. The file is not read until Start.
func NewWatcher(path string, target Target, logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Watcher{
		path:   filepath.Clean(path),
		target: target,
		logger: logger.With(log.String(log.FieldComponent, "descriptions")),
	}
}

// OnReload registers fn to be called after every reload attempt, with the
// table applied or the error that prevented it. It must be called before Start.
func (w *Watcher) OnReload(fn func(metrics.Descriptions, error)) {
	w.onReload = fn
}

// Start performs the initial load, applies it and begins watching. The
// initial load must succeed.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}

	d, err := Load(w.path)
	if err != nil {
		return err
	}
	w.target.SetDescriptions(d)
	w.logger.Info("descriptions loaded", log.FileFields(w.path, "load", len(d))...)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("descriptions: %w", err)
	}
	// Watch the directory so editors that replace the file are still seen.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("descriptions: %w", err)
	}

	w.watcher = fw
	w.done = make(chan struct{})
	w.wg.Add(1)
	go w.loop(fw, w.done)
	return nil
}

func (w *Watcher) loop(fw *fsnotify.Watcher, done chan struct{}) {
	defer w.wg.Done()
	for {
		select {
		case <-done:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload(ev.Op.String())
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", log.Error(err))
		}
	}
}

func (w *Watcher) reload(op string) {
	d, err := Load(w.path)
	if err != nil {
		w.logger.Warn("descriptions reload failed", log.String(log.FieldPath, w.path), log.String(log.FieldOp, op), log.Error(err))
	} else {
		w.target.SetDescriptions(d)
		w.logger.Info("descriptions reloaded", log.FileFields(w.path, op, len(d))...)
	}
	if w.onReload != nil {
		w.onReload(d, err)
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	fw, done := w.watcher, w.done
	w.watcher, w.done = nil, nil
	w.mu.Unlock()

	if fw == nil {
		return nil
	}
	close(done)
	err := fw.Close()
	w.wg.Wait()
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}
	return err
}
