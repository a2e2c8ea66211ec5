// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sitemap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// IndexFile is the name of the sitemap index document.
const IndexFile = "sitemap.xml"

// ErrOutputDir is returned when the output directory cannot be created.
// It is the only error that aborts a write.
var ErrOutputDir = errors.New("cannot create output directory")

// GroupResult describes what happened to one group.
type GroupResult struct {
	Name    string
	File    string
	Count   int
	Written bool  // Document written
	Removed bool  // Stale document removed because the group is empty
	Err     error // Write failure; the group is left out of the index
}

// Result summarizes a write.
type Result struct {
	Groups []GroupResult
	Index  string // Path of the index document; empty if it could not be written
}

// Count returns the entry count of the named group.
func (r Result) Count(name string) int {
	for _, g := range r.Groups {
		if g.Name == name {
			return g.Count
		}
	}
	return 0
}

// Write renders every group into outDir and writes the index. The pages
// group is always written. Other groups are written only when non-empty;
// an empty group's stale file is removed. The index lists non-empty groups
// that were written. Per-file failures are logged and recorded in the
// result; only failing to create outDir returns an error.
func Write(outDir, baseURL string, groups []Group, now time.Time, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("%w %s: %v", ErrOutputDir, outDir, err)
	}

	var res Result
	var indexLocs []string
	for _, g := range groups {
		gr := GroupResult{Name: g.Name, File: filepath.Join(outDir, g.FileName()), Count: len(g.Entries)}

		if len(g.Entries) == 0 && g.Name != PagesGroup {
			removed, err := removeStale(gr.File)
			if err != nil {
				log.Warn("cannot remove stale sitemap", zap.String("file", gr.File), zap.Error(err))
				gr.Err = err
			}
			gr.Removed = removed
			res.Groups = append(res.Groups, gr)
			continue
		}

		data, err := MarshalURLSet(g.Entries)
		if err == nil {
			err = atomicWrite(gr.File, data)
		}
		if err != nil {
			log.Warn("cannot write sitemap", zap.String("file", gr.File), zap.Error(err))
			gr.Err = err
			res.Groups = append(res.Groups, gr)
			continue
		}
		gr.Written = true
		res.Groups = append(res.Groups, gr)
		log.Debug("wrote sitemap", zap.String("file", gr.File), zap.Int("entries", gr.Count))

		if gr.Count > 0 {
			indexLocs = append(indexLocs, JoinURL(baseURL, "/"+g.FileName()))
		}
	}

	indexPath := filepath.Join(outDir, IndexFile)
	data, err := MarshalIndex(indexLocs, now)
	if err == nil {
		err = atomicWrite(indexPath, data)
	}
	if err != nil {
		log.Warn("cannot write sitemap index", zap.String("file", indexPath), zap.Error(err))
		return res, nil
	}
	res.Index = indexPath
	return res, nil
}

// removeStale deletes path if it exists.
func removeStale(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// atomicWrite writes data to a temp file in the same directory then
// renames it over path, so readers never observe a partial document.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	// Preserve original file permissions if the file exists.
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(dir, ".sitemap-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
