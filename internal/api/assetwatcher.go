package api

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// AssetWatcher rescans the static asset hashes when files under the static
// directory change. Dev-mode convenience: editing styles or scripts takes
// effect without a restart.
type AssetWatcher struct {
	assets   *StaticAssets
	dir      string
	logger   *slog.Logger
	debounce time.Duration
}

// NewAssetWatcher creates a watcher over the given static directory.
func NewAssetWatcher(assets *StaticAssets, dir string, logger *slog.Logger) *AssetWatcher {
	return &AssetWatcher{
		assets:   assets,
		dir:      dir,
		logger:   logger.With(slog.String("component", "asset-watcher")),
		debounce: 500 * time.Millisecond,
	}
}

// SetDebounce overrides the default debounce interval (for testing).
func (aw *AssetWatcher) SetDebounce(d time.Duration) {
	aw.debounce = d
}

// Start blocks until ctx is canceled, rescanning asset hashes after file
// change events settle. Failure to create the watcher is logged, not fatal.
func (aw *AssetWatcher) Start(ctx context.Context) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		aw.logger.Warn("fsnotify unavailable, asset rescan disabled", "error", err)
		return
	}
	defer w.Close() //nolint:errcheck

	// Watch the static dir and its subdirectories.
	filepath.WalkDir(aw.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if addErr := w.Add(path); addErr != nil {
			aw.logger.Warn("failed to watch directory", "path", path, "error", addErr)
		}
		return nil
	})

	aw.logger.Info("watching static assets", slog.String("dir", aw.dir))

	// Debounce timer coalesces editor write bursts into one rescan.
	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}
	rescanPending := false

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !debounceTimer.Stop() {
				select {
				case <-debounceTimer.C:
				default:
				}
			}
			debounceTimer.Reset(aw.debounce)
			rescanPending = true

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			aw.logger.Error("fsnotify error", "error", err)

		case <-debounceTimer.C:
			if rescanPending {
				rescanPending = false
				aw.assets.Rescan(aw.logger)
			}
		}
	}
}
