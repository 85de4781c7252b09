// Package watch reports changes to a fixed set of files, debounced so that
// editors writing a file in several steps produce a single notification.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/bpschema/logging"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches files by watching their parent directories.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	logger   *logrus.Entry
	onChange func(path string)
	// targetToLink maps a symlink target back to the watched link path.
	targetToLink map[string]string
}

// New creates a watcher for paths. onChange receives the watched path that
// changed last within each debounce window.
func New(paths []string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:      fw,
		files:        make(map[string]bool),
		debounce:     debounce,
		logger:       logging.NewLogger("watch"),
		onChange:     onChange,
		targetToLink: make(map[string]string),
	}

	watchedDirs := make(map[string]bool)
	addDir := func(dir string) error {
		if watchedDirs[dir] {
			return nil
		}
		if err := fw.Add(dir); err != nil {
			return err
		}
		watchedDirs[dir] = true
		return nil
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		if err := addDir(filepath.Dir(abs)); err != nil {
			fw.Close()
			return nil, err
		}

		// fsnotify does not follow symlinks, so watch the target's directory too
		if info, err := os.Lstat(abs); err == nil && info.Mode()&os.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(abs)
			if err != nil {
				w.logger.WithError(err).Warnf("Failed to resolve symlink %s", abs)
				continue
			}
			w.targetToLink[target] = abs
			if err := addDir(filepath.Dir(target)); err != nil {
				w.logger.WithError(err).Warnf("Failed to watch symlink target dir %s", filepath.Dir(target))
			}
		}
	}

	return w, nil
}

// Start processes events until ctx is cancelled. It closes the underlying
// watcher before returning.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, relevant := w.resolve(event.Name)
			if !relevant {
				continue
			}

			pending = name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.logger.Infof("Changed: %s", filepath.Base(pending))
			if w.onChange != nil {
				w.onChange(pending)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Errorf("Watcher error: %v", err)

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		}
	}
}

// resolve maps an event path to the watched path it concerns.
func (w *Watcher) resolve(name string) (string, bool) {
	if link, ok := w.targetToLink[name]; ok {
		return link, true
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	return abs, w.files[abs]
}

// Close releases the watcher without waiting for Start to return.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
