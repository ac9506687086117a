// Package watch pre-processes newly delivered model directories.
package watch

import (
	"log"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/evalboard/console/pkg/evals"
)

// Watcher observes the raw results root and warms the processed-artifact
// cache when the external pipeline delivers a new model directory. It never
// invalidates existing cache entries; already-processed models are untouched.
type Watcher struct {
	root string
	svc  *evals.Service
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher creates a watcher for the raw results root.
func NewWatcher(root string, svc *evals.Service) *Watcher {
	return &Watcher{root: root, svc: svc}
}

// Start begins watching. It fails if the root does not exist yet; callers
// treat that as a soft condition and run without the watcher.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.root); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw
	w.done = make(chan struct{})

	go w.loop()
	log.Printf("[watch] watching raw root %s", w.root)
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil || !info.IsDir() {
				continue
			}
			id := url.PathEscape(filepath.Base(event.Name))
			go func() {
				if _, err := w.svc.EnsureProcessed(id); err != nil {
					log.Printf("[watch] warm-up of %s failed: %v", id, err)
				}
			}()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("[watch] watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Stop ends watching. Safe to call when Start never succeeded.
func (w *Watcher) Stop() {
	if w.fsw == nil {
		return
	}
	close(w.done)
	w.fsw.Close()
	w.fsw = nil
}
