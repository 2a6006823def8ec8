// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/jeranaias/textkit/internal/logger"
	"github.com/jeranaias/textkit/internal/util"
	"golang.org/x/time/rate"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 250 * time.Millisecond

// Handler receives the full content of the watched file.
type Handler func(content string) error

// Watcher re-reads a single file whenever it changes and hands the content
// to a Handler. Bursts of events within the debounce window collapse into
// one call, and calls are never closer together than the debounce.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
	limiter  *rate.Limiter
	watcher  *fsnotify.Watcher
}

// New creates a watcher for path. The parent directory is watched so that
// editors which save by renaming a temp file are still seen.
func New(path string, debounce time.Duration, handler Handler) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch handler is nil: %w", util.ErrInvalidArgument)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		handler:  handler,
		limiter:  rate.NewLimiter(rate.Every(debounce), 1),
		watcher:  fw,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls the handler once with the current content, if the file exists,
// then once per settled change. It blocks until ctx is done and releases
// the underlying watcher before returning. Handler errors are logged and
// do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	log := logger.FromContext(ctx).With("path", w.path)

	w.fire(ctx, log)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			w.fire(ctx, log)
		}
	}
}

// fire reads the file and calls the handler. A missing file is skipped.
func (w *Watcher) fire(ctx context.Context, log *charmlog.Logger) {
	if ctx.Err() != nil {
		return
	}
	data, err := os.ReadFile(w.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("read failed", "err", err)
		}
		return
	}
	if err := w.handler(string(data)); err != nil {
		log.Warn("handler failed", "err", err)
	}
}
