package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eringen/siteconf"
)

// LoadFunc produces a freshly validated configuration.
type LoadFunc func() (siteconf.SiteConfig, error)

// Watcher reloads the configuration file when it changes and publishes the
// result to a Snapshot. A failed reload keeps the previous snapshot.
type Watcher struct {
	configPath string
	load       LoadFunc
	snapshot   *Snapshot
	metrics    *Metrics
	watcher    *fsnotify.Watcher
	debounce   time.Duration

	reloadChan chan struct{}
	stopChan   chan struct{}
	stopOnce   sync.Once
}

// NewWatcher creates a watcher for configPath. debounce collapses bursts of
// editor writes into a single reload; zero selects 500ms.
func NewWatcher(configPath string, load LoadFunc, snapshot *Snapshot, metrics *Metrics, debounce time.Duration) (*Watcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		configPath: absPath,
		load:       load,
		snapshot:   snapshot,
		metrics:    metrics,
		watcher:    fw,
		debounce:   debounce,
		reloadChan: make(chan struct{}, 1),
		stopChan:   make(chan struct{}),
	}, nil
}

// Start begins watching. The directory is watched rather than the file so
// that editors which replace the file on save are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch config directory %s: %w", dir, err)
	}
	slog.Info("Watching configuration", "config_path", w.configPath)

	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends both loops and closes the underlying watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		err = w.watcher.Close()
	})
	return err
}

// Reload loads the configuration now and publishes it on success.
func (w *Watcher) Reload() error {
	cfg, err := w.load()
	w.metrics.ObserveLoad(cfg, err)
	if err != nil {
		if field, ok := siteconf.InvalidField(err); ok {
			slog.Error("Configuration rejected, keeping previous", "field", field, "error", err)
		} else {
			slog.Error("Configuration reload failed, keeping previous", "error", err)
		}
		return err
	}
	w.snapshot.Store(cfg)
	slog.Info("Configuration reloaded", "title", cfg.Title, "timezone", cfg.Timezone)
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context) {
	configFile := filepath.Base(w.configPath)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != configFile {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Config file change detected", "file", event.Name, "op", event.Op.String())
				w.trigger()
			case event.Has(fsnotify.Remove):
				slog.Warn("Config file removed", "file", event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.reloadChan <- struct{}{}:
	default:
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.reloadChan:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			_ = w.Reload()
		}
	}
}
