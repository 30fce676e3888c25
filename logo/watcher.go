package logo

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors the logo template file and hot-reloads it on change.
// A failed reload keeps the last good template.
type Watcher struct {
	path    string
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu  sync.RWMutex
	tpl *Template
}

// NewWatcher loads the template at path and starts watching its directory.
// Watching the directory rather than the file survives editors and deploy
// tools that replace the file via rename.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tpl, err := FromFile(path)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}
	w := &Watcher{
		path:    path,
		logger:  logger,
		watcher: fsWatcher,
		done:    make(chan struct{}),
		tpl:     tpl,
	}
	go w.processEvents()
	return w, nil
}

// Template returns the current logo template
func (w *Watcher) Template() *Template {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tpl
}

// Close stops watching
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) processEvents() {
	base := filepath.Base(w.path)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			tpl, err := FromFile(w.path)
			if err != nil {
				w.logger.Warn("logo reload", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.mu.Lock()
			w.tpl = tpl
			w.mu.Unlock()
			w.logger.Info("logo reloaded", zap.String("path", w.path))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("logo watch", zap.Error(err))
		}
	}
}
