//go:generate mockgen -source=watcher.go -destination=watcher_mock.go -package=watcher
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"lunatint/internal/app/errors"
	"lunatint/internal/config"
	"lunatint/internal/config/logger"
)

// Watcher reports changes to a fixed set of files
type Watcher interface {
	Watch(ctx context.Context, paths []string, onChange func(files []string)) error
}

type watcher struct {
	debounce time.Duration
	log      logger.Logger
}

// NewWatcher creates a Watcher using the configured debounce period
func NewWatcher(cfg *config.Config, log logger.Logger) Watcher {
	return &watcher{
		debounce: cfg.Watch.Debounce,
		log:      log.WithComponent("WATCHER"),
	}
}

// Watch blocks until ctx is done, calling onChange after each burst of changes to paths.
// Parent directories are watched rather than the files so editors that save by rename are seen.
func (w *watcher) Watch(ctx context.Context, paths []string, onChange func(files []string)) error {
	if len(paths) == 0 {
		return errors.ErrNothingToWatch
	}

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errors.ErrFailedToWatch, p, err)
		}

		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWatch, err)
	}
	defer fsw.Close()

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("%w: %s: %w", errors.ErrFailedToWatch, dir, err)
		}
	}

	d := NewDebouncer(w.debounce, onChange)
	defer d.Stop()

	w.log.Info().Msgf("Watching %d file(s) for changes", len(targets))

	for {
		select {
		case <-ctx.Done():
			w.log.Debug().Msg("Stopped watching")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if !isRelevantEvent(event) {
				continue
			}

			name := filepath.Clean(event.Name)
			if _, ok := targets[name]; ok {
				w.log.Debug().Msgf("Changed: %s (%s)", name, event.Op)
				d.Trigger(name)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			w.log.Warn().Err(err).Msg("Watcher error")
		}
	}
}

// isRelevantEvent returns true if the event can change file contents
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename)
}
