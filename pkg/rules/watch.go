package rules

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the knowledge base at path into store whenever the file is
// written or replaced, until ctx is done. A reload that fails to decode or
// validate is logged and the previous knowledge base stays in place.
//
// The parent directory is watched so editors that save by rename are seen.
func Watch(ctx context.Context, path string, store *Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				kb, err := LoadFile(abs)
				if err != nil {
					logger.Warn("knowledge base reload failed, keeping previous",
						zap.String("path", abs), zap.Error(err))
					continue
				}
				store.Set(kb, abs)
				logger.Info("knowledge base reloaded",
					zap.String("path", abs),
					zap.Int("symptoms", len(kb.Symptoms)),
					zap.Int("rules", len(kb.Rules)))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("knowledge base watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
