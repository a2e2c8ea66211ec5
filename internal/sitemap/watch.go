// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sitemap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the tree must be quiet before regenerating.
const DefaultDebounce = 500 * time.Millisecond

const minTick = time.Millisecond

// Generate assembles every group and writes them to outDir.
func Generate(opts Options, outDir string) (Result, error) {
	groups := Assemble(opts)
	return Write(outDir, opts.BaseURL, groups, opts.now(), opts.Logger)
}

// Watcher regenerates sitemaps whenever the routing tree or a dataset file
// changes.
type Watcher struct {
	opts     Options
	outDir   string
	debounce time.Duration
	onResult func(Result, error)
	log      *zap.Logger

	watcher  *fsnotify.Watcher
	datasets map[string]bool // Cleaned dataset file paths
	pending  time.Time       // Time of the last relevant event; zero when idle
}

// NewWatcher creates a Watcher. onResult, when non-nil, receives the outcome
// of every generation, including the initial one. debounce <= 0 uses
// DefaultDebounce.
func NewWatcher(opts Options, outDir string, debounce time.Duration, onResult func(Result, error)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		opts:     opts,
		outDir:   filepath.Clean(outDir),
		debounce: debounce,
		onResult: onResult,
		log:      log,
		watcher:  fw,
		datasets: make(map[string]bool),
	}

	w.addTree(opts.AppDir)
	for _, ds := range opts.Datasets {
		file := filepath.Clean(ds.File)
		w.datasets[file] = true
		// Watch the directory so replacing or creating the file is seen.
		if err := fw.Add(filepath.Dir(file)); err != nil {
			log.Debug("cannot watch dataset directory", zap.String("dir", filepath.Dir(file)), zap.Error(err))
		}
	}
	return w, nil
}

// Run generates once, then regenerates after each quiet period following
// a change, until ctx is done. It returns an error only when generation
// hits ErrOutputDir.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.generate(); err != nil {
		return err
	}

	ticker := time.NewTicker(w.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
				continue
			}
			w.pending = time.Time{}
			if err := w.generate(); err != nil {
				return err
			}
		}
	}
}

// tickInterval is how often pending changes are checked: a fifth of the
// debounce, never below minTick.
func (w *Watcher) tickInterval() time.Duration {
	return max(w.debounce/5, minTick)
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if !w.relevant(name) {
		return
	}

	if event.Op&fsnotify.Create != 0 && !w.datasets[name] {
		// New directories under the routing tree need their own watch.
		w.addTree(name)
	}

	w.log.Debug("change detected", zap.String("path", name), zap.String("op", event.Op.String()))
	w.pending = time.Now()
}

// relevant filters out events from generated output and unrelated files
// that share a directory with a dataset.
func (w *Watcher) relevant(name string) bool {
	if name == w.outDir || strings.HasPrefix(name, w.outDir+string(filepath.Separator)) {
		return false
	}
	if w.datasets[name] {
		return true
	}
	app := filepath.Clean(w.opts.AppDir)
	return name == app || strings.HasPrefix(name, app+string(filepath.Separator))
}

// addTree watches root and every directory beneath it. Non-directories and
// missing paths are ignored.
func (w *Watcher) addTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			w.log.Debug("cannot watch directory", zap.String("dir", path), zap.Error(err))
		}
		return nil
	})
}

func (w *Watcher) generate() error {
	res, err := Generate(w.opts, w.outDir)
	if w.onResult != nil {
		w.onResult(res, err)
	}
	if errors.Is(err, ErrOutputDir) {
		return err
	}
	return nil
}
