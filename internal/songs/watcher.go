package songs

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// reloadDelay debounces bursts of writes from editors that save in several
// steps.
const reloadDelay = 200 * time.Millisecond

// Watcher reloads a catalog whenever its file changes.
type Watcher struct {
	catalog  *Catalog
	watcher  *fsnotify.Watcher
	path     string
	mu       sync.Mutex
	timer    *time.Timer
	onChange func() // called after a successful reload
}

// NewWatcher watches the directory holding path, so atomic saves that
// replace the file are seen too.
func NewWatcher(c *Catalog, path string, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		catalog:  c,
		watcher:  fw,
		path:     abs,
		onChange: onChange,
	}, nil
}

// Start processes events. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("path", w.path).Msg("songs: watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDelay, w.reload)
}

func (w *Watcher) reload() {
	songs, err := ReadFile(w.path)
	if err != nil {
		// Mid-save or removed: keep the current catalog.
		log.Warn().Err(err).Str("path", w.path).Msg("songs: reload failed")
		return
	}
	if err := w.catalog.Load(songs); err != nil {
		log.Warn().Err(err).Str("path", w.path).Msg("songs: reload failed")
		return
	}
	log.Info().Str("path", w.path).Int("songs", len(songs)).Msg("songs: catalog reloaded")
	if w.onChange != nil {
		w.onChange()
	}
}

// Stop stops the watcher and any pending reload.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
