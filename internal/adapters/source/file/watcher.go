package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

// Watch calls onChange once per burst of writes to any of paths, until ctx
// is cancelled. Parent directories are watched so editors that replace the
// file through a rename are still noticed. Watcher errors are logged and do
// not stop the watch.
func Watch(ctx context.Context, paths []string, debounce time.Duration, logger *zap.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = watcher.Close()
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	loop := newWatchLoop(targets, debounce, logger, onChange)
	go func() {
		defer watcher.Close()
		loop.run(ctx, watcher.Events, watcher.Errors)
	}()

	return nil
}

type watchLoop struct {
	targets  map[string]struct{}
	debounce time.Duration
	logger   *zap.Logger
	onChange func()
}

func newWatchLoop(targets map[string]struct{}, debounce time.Duration, logger *zap.Logger, onChange func()) *watchLoop {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &watchLoop{targets: targets, debounce: debounce, logger: logger, onChange: onChange}
}

func (l *watchLoop) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if _, tracked := l.targets[filepath.Clean(event.Name)]; !tracked {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			pending = time.After(l.debounce)
		case err, ok := <-errs:
			if !ok {
				return
			}
			l.logger.Warn("source watch error", zap.Error(err))
		case <-pending:
			pending = nil
			l.onChange()
		}
	}
}
