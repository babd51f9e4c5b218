package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"mercator-hq/callisto/pkg/telemetry/logging"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is called once per settled change with the path of the
// dataset file that changed.
type ChangeHandler func(ctx context.Context, path string) error

// MetricsRecorder receives watcher observations. The telemetry metrics
// package satisfies it without this package importing it.
type MetricsRecorder interface {
	RecordWatchEvent(op string)
	RecordWatchTrigger()
	SetWatchedPaths(n int)
}

// Watcher watches dataset files for changes and triggers re-exports.
// Bursts of filesystem events for one file collapse into a single
// trigger after a quiet period.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *logging.Logger
	config  *Config
	metrics MetricsRecorder

	// State
	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	doneCh     chan struct{}
	debouncers map[string]*Debouncer
}

// Config contains configuration for the watcher.
type Config struct {
	// Paths lists the files and directories to watch.
	Paths []string

	// Debounce is the quiet period after the last change before the
	// handler fires (default: 500ms).
	Debounce time.Duration

	// Extensions restricts watched files by extension
	// (default: ".json", ".yaml", ".yml").
	Extensions []string

	// SkipHidden controls whether hidden files and directories are
	// ignored.
	SkipHidden bool

	// Logger receives watcher log lines. Defaults to an info-level
	// JSON logger on stdout.
	Logger *logging.Logger

	// Metrics receives watcher observations when set.
	Metrics MetricsRecorder
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:   500 * time.Millisecond,
		Extensions: []string{".json", ".yaml", ".yml"},
		SkipHidden: true,
	}
}

// NewWatcher creates a watcher for the configured paths.
func NewWatcher(config *Config) (*Watcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if len(config.Paths) == 0 {
		return nil, fmt.Errorf("watcher requires at least one path")
	}
	if config.Debounce <= 0 {
		config.Debounce = 500 * time.Millisecond
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".json", ".yaml", ".yml"}
	}

	logger := config.Logger
	if logger == nil {
		// The zero logging config is valid.
		logger, _ = logging.New(logging.Config{})
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:    fsw,
		logger:     logger.With("component", "watch"),
		config:     config,
		metrics:    config.Metrics,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
		debouncers: make(map[string]*Debouncer),
	}, nil
}

// Watch starts watching and calls onChange once per settled change.
// It blocks until the context is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeHandler) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	watched := 0
	for _, path := range w.config.Paths {
		if err := w.addPath(path); err != nil {
			return fmt.Errorf("failed to watch path %q: %w", path, err)
		}
		watched++
	}

	if w.metrics != nil {
		w.metrics.SetWatchedPaths(watched)
	}

	w.logger.Info("watcher started",
		"paths", len(w.config.Paths),
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			if w.metrics != nil {
				w.metrics.RecordWatchEvent(opString(event.Op))
			}

			w.logger.Debug("file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			path := event.Name
			w.debouncerFor(path).Trigger(func() {
				w.fire(ctx, onChange, path)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			// Keep watching despite errors.
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// fire runs the change handler for one settled path.
func (w *Watcher) fire(ctx context.Context, onChange ChangeHandler, path string) {
	if w.metrics != nil {
		w.metrics.RecordWatchTrigger()
	}

	ctx = logging.WithInputPath(ctx, path)
	ctx = logging.WithTrigger(ctx, "watch")

	w.logger.InfoContext(ctx, "change settled, triggering re-export")

	if err := onChange(ctx, path); err != nil {
		w.logger.ErrorContext(ctx, "re-export failed", "error", err)
	}
}

// Stop stops the watcher and cancels pending debounced triggers.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.mu.Lock()
	for _, d := range w.debouncers {
		d.Stop()
	}
	w.debouncers = make(map[string]*Debouncer)
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// IsRunning reports whether the watcher loop is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// debouncerFor returns the debouncer for a path, creating it on first
// use. Changes to different files never coalesce with each other.
func (w *Watcher) debouncerFor(path string) *Debouncer {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, ok := w.debouncers[path]
	if !ok {
		d = NewDebouncer(w.config.Debounce)
		w.debouncers[path] = d
	}
	return d
}

// addPath adds a file or directory to the watcher.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return w.addDirectory(path)
	}
	return w.watcher.Add(path)
}

// addDirectory adds a directory and all its subdirectories.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".") && path != dir {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %q: %w", path, err)
			}
			w.logger.Debug("watching directory", "path", path)
		}

		return nil
	})
}

// shouldProcessEvent reports whether an event should trigger a
// re-export.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	// Chmod carries no content change.
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	if !w.hasValidExtension(ext) {
		return false
	}

	if w.config.SkipHidden && strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	return true
}

// hasValidExtension checks whether a file extension is watched.
func (w *Watcher) hasValidExtension(ext string) bool {
	for _, validExt := range w.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

// opString maps an fsnotify operation to a metric label value.
func opString(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return "create"
	case op&fsnotify.Write == fsnotify.Write:
		return "write"
	case op&fsnotify.Remove == fsnotify.Remove:
		return "remove"
	case op&fsnotify.Rename == fsnotify.Rename:
		return "rename"
	default:
		return "other"
	}
}

// Debouncer collapses rapid event bursts into a single callback after a
// quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Trigger arms the debouncer with a new event. The callback fires after
// the interval unless another Trigger resets it first.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
			d.mu.Lock()
			cb := d.callback
			d.mu.Unlock()

			if cb != nil {
				cb()
			}
		}
	})
}

// Stop cancels any pending callback. The debouncer cannot be reused
// afterwards.
func (d *Debouncer) Stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
