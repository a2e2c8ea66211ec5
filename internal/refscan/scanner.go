// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package refscan finds literal internal-path references in a project's
// source files. It recognizes a fixed family of idioms (anchor hrefs, link
// components, router calls, server redirects, redirect tables, markdown
// links) and ignores anything inside comments.
package refscan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/routegraph/pkg/types"
)

// Config controls a scan. Zero-valued fields fall back to the defaults.
type Config struct {
	Roots       []string
	Extensions  []string // Lowercase, with leading dot
	SkipDirs    []string // Directory names skipped at any depth
	Ignore      []string // doublestar patterns relative to each root
	Idioms      []Idiom
	Concurrency int // Maximum roots scanned at once; <= 0 uses runtime.NumCPU()
	Logger      *zap.Logger
}

// Stats summarizes a scan.
type Stats struct {
	FilesScanned int
	FilesSkipped int // Files whose extension is not scanned, or ignored
	FilesFailed  int // Files that could not be read
	References   int // Raw matches before deduplication
}

func (s *Stats) add(o Stats) {
	s.FilesScanned += o.FilesScanned
	s.FilesSkipped += o.FilesSkipped
	s.FilesFailed += o.FilesFailed
	s.References += o.References
}

// Scanner collects references across several source roots.
type Scanner struct {
	cfg  Config
	exts map[string]bool
	skip map[string]bool
	log  *zap.Logger
}

// New creates a Scanner, filling unset fields of cfg with defaults.
func New(cfg Config) *Scanner {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	if len(cfg.SkipDirs) == 0 {
		cfg.SkipDirs = DefaultSkipDirs
	}
	if len(cfg.Idioms) == 0 {
		cfg.Idioms = DefaultIdioms
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Scanner{
		cfg:  cfg,
		exts: make(map[string]bool, len(cfg.Extensions)),
		skip: make(map[string]bool, len(cfg.SkipDirs)),
		log:  log,
	}
	for _, e := range cfg.Extensions {
		s.exts[strings.ToLower(e)] = true
	}
	for _, d := range cfg.SkipDirs {
		s.skip[d] = true
	}
	return s
}

// Scan walks every root and returns the merged set of referenced paths.
// Each root is scanned by its own worker into a private set; the sets are
// merged once all workers finish. Missing roots contribute nothing. The
// only error returned is context cancellation.
func (s *Scanner) Scan(ctx context.Context) (*types.ReferenceSet, Stats, error) {
	sets := make([]*types.ReferenceSet, len(s.cfg.Roots))
	stats := make([]Stats, len(s.cfg.Roots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, root := range s.cfg.Roots {
		i, root := i, root
		g.Go(func() error {
			set, st, err := s.scanRoot(gctx, root)
			sets[i], stats[i] = set, st
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, fmt.Errorf("scanning references: %w", err)
	}

	merged := types.NewReferenceSet()
	var total Stats
	for i := range sets {
		merged.Merge(sets[i])
		total.add(stats[i])
	}

	s.log.Debug("reference scan complete",
		zap.Int("roots", len(s.cfg.Roots)),
		zap.Int("files", total.FilesScanned),
		zap.Int("references", total.References),
		zap.Int("distinct", merged.Len()))
	return merged, total, nil
}

func (s *Scanner) scanRoot(ctx context.Context, root string) (*types.ReferenceSet, Stats, error) {
	set := types.NewReferenceSet()
	var st Stats

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		s.log.Debug("skipping missing source root", zap.String("root", root))
		return set, st, nil
	}

	ign := loadGitignore(root).with(s.cfg.Ignore)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Debug("skipping inaccessible entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if path != root && (s.skip[d.Name()] || ign.isIgnored(rel)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.exts[strings.ToLower(filepath.Ext(path))] || ign.isIgnored(rel) {
			st.FilesSkipped++
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			s.log.Warn("cannot read source file", zap.String("path", path), zap.Error(readErr))
			st.FilesFailed++
			return nil
		}

		st.FilesScanned++
		for _, ref := range ExtractReferences(ctx, path, content, s.cfg.Idioms) {
			set.Add(ref.Path, ref.SourceFile)
			st.References++
		}
		return nil
	})
	return set, st, err
}

// ScanFile extracts the references of a single file.
func ScanFile(ctx context.Context, path string, idioms []Idiom) ([]types.Reference, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(idioms) == 0 {
		idioms = DefaultIdioms
	}
	return ExtractReferences(ctx, path, content, idioms), nil
}
