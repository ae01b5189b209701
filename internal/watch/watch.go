// Package watch re-reads a log file whenever it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/reqlog/internal/logger"
	"github.com/yildizm/reqlog/internal/logset"
)

// DefaultDebounce is the quiet period after the last change before a reload
const DefaultDebounce = 200 * time.Millisecond

// Result is the outcome of one reload
type Result struct {
	Sets  []logset.Set
	Stats logset.Stats
	Err   error
}

// Options configures a Watcher
type Options struct {
	Debounce time.Duration
	Load     logset.LoadOptions
	Logger   *logger.Logger
}

// Watcher reloads a single log file on change. The parent directory is
// watched so that truncate-and-recreate rotations are seen.
type Watcher struct {
	path    string
	opts    Options
	watcher *fsnotify.Watcher
	log     *logger.Logger
}

// New creates a watcher for path
func New(path string, opts Options) (*Watcher, error) {
	if err := ValidatePath(path); err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return &Watcher{
		path:    abs,
		opts:    opts,
		watcher: fsw,
		log:     opts.Logger.WithComponent("watch"),
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers a Result after every settled burst of changes. It blocks
// until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, deliver func(Result)) error {
	w.log.Debug("watching file", logger.F("path", w.path), logger.Duration(w.opts.Debounce))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("file changed", logger.F("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			deliver(w.reload())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", logger.Error(err))
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) reload() Result {
	start := time.Now()
	sets, stats, err := logset.Load(w.path, w.opts.Load)
	if err != nil {
		return Result{Err: err}
	}
	w.log.Debug("reloaded", logger.F("sets", stats.Sets), logger.Duration(time.Since(start)))
	return Result{Sets: sets, Stats: stats}
}

// ValidatePath checks that path names an existing regular file
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("empty file path")
	}

	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return errors.New("cannot watch directory, must be a file")
	}
	return nil
}
