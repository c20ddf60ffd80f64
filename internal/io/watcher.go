package io

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FileWatcher reports changes to a single file. Editors often replace files
// instead of writing in place, so the parent directory is watched and events
// are filtered by name. Bursts of events are collapsed into one callback.
type FileWatcher struct {
	logger   *logrus.Logger
	settle   time.Duration
	onChange func(path string)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	target  string
	done    chan struct{}
}

// NewFileWatcher returns a watcher calling onChange from its own goroutine.
func NewFileWatcher(logger *logrus.Logger, settle time.Duration, onChange func(path string)) *FileWatcher {
	return &FileWatcher{
		logger:   logger,
		settle:   settle,
		onChange: onChange,
	}
}

// Watch replaces the watched file with path.
func (fw *FileWatcher) Watch(path string) error {
	fw.Stop()

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	done := make(chan struct{})

	fw.mu.Lock()
	fw.watcher = w
	fw.target = abs
	fw.done = done
	fw.mu.Unlock()

	go fw.run(w, abs, done)

	fw.logger.WithField("path", abs).Debug("Watching image file")
	return nil
}

// Stop ends the current watch. Safe to call when nothing is watched.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	w, done := fw.watcher, fw.done
	fw.watcher, fw.done, fw.target = nil, nil, ""
	fw.mu.Unlock()

	if w == nil {
		return
	}
	w.Close()
	<-done
}

// Target returns the absolute path being watched, or "".
func (fw *FileWatcher) Target() string {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.target
}

func (fw *FileWatcher) run(w *fsnotify.Watcher, target string, done chan struct{}) {
	defer close(done)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(fw.settle, func() {
				if fw.Target() != target {
					return
				}
				fw.logger.WithField("path", target).Info("Image file changed on disk")
				fw.onChange(target)
			})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			fw.logger.WithError(err).Warn("File watcher error")
		}
	}
}
