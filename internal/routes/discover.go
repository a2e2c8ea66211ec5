// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package routes reconstructs URL routes from a file-system routing tree.
// A directory is routable when it holds a page marker file; its route is
// derived from the directory path with group, private and parallel
// segments removed.
package routes

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/petar-djukic/routegraph/pkg/types"
)

// DefaultMarkers lists the page marker filenames in precedence order.
var DefaultMarkers = []string{
	"page.tsx",
	"page.jsx",
	"page.ts",
	"page.js",
	"page.mdx",
	"route.ts",
	"route.js",
}

// Options configures discovery.
type Options struct {
	Markers        []string    // Marker filenames in precedence order (default DefaultMarkers)
	IncludeDynamic bool        // Emit routes containing dynamic segments
	Logger         *zap.Logger // Optional; nil discards
}

// Discover walks root depth-first and returns one RouteEntry per directory
// that holds a marker file. A missing or unreadable root yields an empty
// result; unreadable subdirectories are skipped. The walk always descends
// into subdirectories, so static routes nested under dynamic or marker
// directories are found. Results are sorted by route, then source file.
func Discover(root string, opts Options) []types.RouteEntry {
	markers := opts.Markers
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	w := &walker{markers: markers, opts: opts, log: log}
	w.walk(root, "")

	sort.Slice(w.entries, func(i, j int) bool {
		if w.entries[i].Route != w.entries[j].Route {
			return w.entries[i].Route < w.entries[j].Route
		}
		return w.entries[i].SourceFile < w.entries[j].SourceFile
	})
	return w.entries
}

type walker struct {
	markers []string
	opts    Options
	log     *zap.Logger
	entries []types.RouteEntry
}

func (w *walker) walk(dir, rel string) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		w.log.Debug("skipping unreadable directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	present := make(map[string]bool, len(dirents))
	for _, d := range dirents {
		if !d.IsDir() {
			present[d.Name()] = true
		}
	}

	for _, m := range w.markers {
		if !present[m] {
			continue
		}
		w.emit(filepath.Join(dir, m), rel)
		break
	}

	for _, d := range dirents {
		if d.IsDir() {
			w.walk(filepath.Join(dir, d.Name()), filepath.Join(rel, d.Name()))
		}
	}
}

func (w *walker) emit(file, rel string) {
	route, dynamic := RouteFromDir(rel)
	if dynamic && !w.opts.IncludeDynamic {
		return
	}

	info, err := os.Stat(file)
	if err != nil {
		w.log.Debug("skipping unreadable marker", zap.String("file", file), zap.Error(err))
		return
	}

	w.entries = append(w.entries, types.RouteEntry{
		SourceFile:   file,
		Route:        route,
		LastModified: info.ModTime(),
		Dynamic:      dynamic,
	})
}
