package main

import (
	"context"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/c360studio/modelgraph/config"
	"github.com/c360studio/modelgraph/hypergraph"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/fsnotify/fsnotify"
)

// watchAndImport re-runs the full import round whenever a file is
// written or created in the watched directory (docIn itself with a
// glob, docIn's parent directory otherwise), debouncing bursts of
// events (e.g. an editor's write-then-rename) into a single re-import.
// The watch is not recursive: changes in subdirectories are not seen.
// It blocks until the process receives SIGINT/SIGTERM.
func watchAndImport(ctx context.Context, store *hypergraph.Store, docIn, hgOut, glob string, nc *natsclient.Client) error {
	watchDir := docIn
	if glob == "" {
		watchDir = filepath.Dir(docIn)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return readFailure("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(watchDir); err != nil {
		return readFailure("watch %s: %w", watchDir, err)
	}

	signalCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	debounce := config.DefaultConfig().Catalog.WatchDebounce
	if resolvedConfig != nil {
		debounce = resolvedConfig.Catalog.WatchDebounce
	}
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	slog.Info("watching for document changes", "dir", watchDir, "debounce", debounce)

	for {
		select {
		case <-signalCtx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, func() { pending <- struct{}{} })
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "error", err)
		case <-pending:
			if err := runImportOnce(signalCtx, store, docIn, hgOut, glob, nc); err != nil {
				slog.Error("re-import failed", "error", err)
			}
		}
	}
}
