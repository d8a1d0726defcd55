package jobs

import (
	"context"
	"log"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"locationservice/internal/config"
)

// OwnerSyncer applies an owner config to the database.
type OwnerSyncer interface {
	SyncOwners(ctx context.Context, cfg *config.YAMLConfig) error
}

// ConfigWatcher re-syncs owners and redirect rules when the YAML config file
// changes on disk.
type ConfigWatcher struct {
	path     string
	syncer   OwnerSyncer
	debounce time.Duration
	watcher  *fsnotify.Watcher
	synced   chan struct{} // receives after every sync attempt, for tests
}

// NewConfigWatcher creates a watcher for path. The file's directory is
// watched so editors that replace the file are handled.
func NewConfigWatcher(path string, syncer OwnerSyncer) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &ConfigWatcher{
		path:     filepath.Clean(path),
		syncer:   syncer,
		debounce: 500 * time.Millisecond,
		watcher:  w,
	}, nil
}

// Start handles file events until ctx is cancelled.
func (w *ConfigWatcher) Start(ctx context.Context) {
	log.Printf("Config watcher started (file: %s)", w.path)
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			log.Println("Config watcher stopped")
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			// Editors often write in several steps; sync once they settle.
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "error", err)
		case <-fire:
			fire = nil
			w.sync(ctx)
		}
	}
}

func (w *ConfigWatcher) sync(ctx context.Context) {
	defer w.notify()

	cfg, err := config.LoadYAMLConfigFile(w.path)
	if err != nil {
		slog.Error("failed to reload config file", "file", w.path, "error", err)
		return
	}
	if cfg == nil {
		return
	}
	if err := w.syncer.SyncOwners(ctx, cfg); err != nil {
		slog.Error("failed to sync owners from config file", "file", w.path, "error", err)
		return
	}
	log.Printf("Config watcher: synced %d owners", len(cfg.Owners))
}

func (w *ConfigWatcher) notify() {
	if w.synced == nil {
		return
	}
	select {
	case w.synced <- struct{}{}:
	default:
	}
}
