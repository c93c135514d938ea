package completion

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robottwo/acinput/pkg/debounce"
	"go.uber.org/zap"
)

// ReloadDelay is how long the watcher waits for writes to settle before
// reloading the pool.
const ReloadDelay = 100 * time.Millisecond

// Watch reloads the pool at path whenever the file is written or created,
// and passes the new pool to onReload. It watches the parent directory so
// editors that replace the file are still seen. Watch returns once the
// watcher is set up; reloading stops when ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger, onReload func([]string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	target, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return err
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return err
	}

	reload := debounce.Debounce(ReloadDelay, func() {
		if ctx.Err() != nil {
			return
		}

		pool, err := Load(target)
		if err != nil {
			logger.Warn("failed to reload completions", zap.String("path", target), zap.Error(err))
			return
		}

		logger.Debug("reloaded completions", zap.String("path", target), zap.Int("count", len(pool)))
		onReload(pool)
	})

	go func() {
		defer func() {
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					reload()
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("completions watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}
