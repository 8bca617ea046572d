// Package watch re-runs work when files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"digital.vasic.chinotto/pkg/logging"
)

// DefaultDebounce is the quiet period after the last event
// before a run starts.
const DefaultDebounce = 300 * time.Millisecond

// ErrNothingWatched is returned when none of the paths could be
// watched.
var ErrNothingWatched = errors.New("nothing to watch")

// Watcher watches a set of files and directories.
type Watcher struct {
	paths    []string
	debounce time.Duration
	logger   logging.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(l logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher over paths. A path that is a directory
// is watched directly; anything else through its parent.
func New(paths []string, opts ...Option) *Watcher {
	w := &Watcher{
		paths:    paths,
		debounce: DefaultDebounce,
		logger:   logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run calls fn once with an empty name, then again after every
// burst of changes with the name of the last changed path. It
// blocks until ctx is cancelled, returning nil, or the
// underlying watcher fails.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context, changed string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	targets, err := w.add(fw)
	if err != nil {
		return err
	}

	fn(ctx, "")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var pending string
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event, targets) {
				continue
			}
			w.logger.Debug("change detected",
				logging.StringField("path", event.Name),
				logging.StringField("op", event.Op.String()),
			)
			pending = event.Name
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.ErrorField(err))

		case <-timer.C:
			w.logger.Info("re-running", logging.StringField("path", pending))
			fn(ctx, pending)
			pending = ""
		}
	}
}

// add registers every path and returns the set of names whose
// events matter.
func (w *Watcher) add(fw *fsnotify.Watcher) (map[string]bool, error) {
	targets := make(map[string]bool)
	dirs := make(map[string]bool)

	for _, p := range w.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.logger.Warn("skipping path", logging.StringField("path", p), logging.ErrorField(err))
			continue
		}
		dir := filepath.Dir(abs)
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dir = abs
		}
		targets[abs] = true

		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			w.logger.Warn("failed to watch",
				logging.StringField("path", dir),
				logging.ErrorField(err),
			)
			continue
		}
		dirs[dir] = true
	}

	if len(dirs) == 0 {
		return nil, ErrNothingWatched
	}
	return targets, nil
}

func relevant(event fsnotify.Event, targets map[string]bool) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return targets[event.Name] || targets[filepath.Dir(event.Name)]
}
