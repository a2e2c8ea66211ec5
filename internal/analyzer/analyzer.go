// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package analyzer wires route discovery, reference scanning and
// classification into a single pass over a site.
package analyzer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/petar-djukic/routegraph/internal/classify"
	"github.com/petar-djukic/routegraph/internal/config"
	"github.com/petar-djukic/routegraph/internal/refscan"
	"github.com/petar-djukic/routegraph/internal/routes"
	"github.com/petar-djukic/routegraph/pkg/types"
)

// Analysis is the result of one analyzer pass.
type Analysis struct {
	Routes    []types.RouteEntry
	Protected int // Entries matched by a protected rule
	Refs      *types.ReferenceSet
	Stats     refscan.Stats
	Records   []types.OrphanRecord
	Dangling  []classify.DanglingLink // Filled only when requested
}

// Deps holds the inputs of a Runner.
type Deps struct {
	Config   *config.Config
	Rules    config.Rules
	Dangling bool // Also list references that no route serves
}

// Runner performs analyzer passes.
type Runner struct {
	deps Deps
	log  *zap.Logger
}

// NewRunner compiles the rule sets of cfg and returns a Runner.
func NewRunner(cfg *config.Config, dangling bool, log *zap.Logger) (*Runner, error) {
	compiled, err := cfg.Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling rules: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		deps: Deps{Config: cfg, Rules: compiled, Dangling: dangling},
		log:  log,
	}, nil
}

// Run discovers routes, scans references, and classifies every
// non-protected route.
func (r *Runner) Run(ctx context.Context) (*Analysis, error) {
	cfg := r.deps.Config

	// Step 1: Discover routes, dynamic included so templates can be matched.
	entries := routes.Discover(cfg.AppDir, routes.Options{
		Markers:        cfg.Markers,
		IncludeDynamic: true,
		Logger:         r.log,
	})
	r.log.Debug("routes discovered", zap.String("app_dir", cfg.AppDir), zap.Int("count", len(entries)))

	// Step 2: Protection.
	protected := classify.NewProtector(r.deps.Rules.Protected).Protected(entries)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Scan references.
	scanner := refscan.New(refscan.Config{
		Roots:       cfg.SourceRoots,
		Extensions:  cfg.Extensions,
		SkipDirs:    cfg.SkipDirs,
		Ignore:      cfg.Ignore,
		Concurrency: cfg.Concurrency,
		Logger:      r.log,
	})
	refs, stats, err := scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	r.log.Debug("references scanned",
		zap.Int("files", stats.FilesScanned),
		zap.Int("failed", stats.FilesFailed),
		zap.Int("paths", refs.Len()))

	// Step 4: Classify.
	a := &Analysis{
		Routes:    entries,
		Protected: len(protected),
		Refs:      refs,
		Stats:     stats,
		Records:   classify.NewClassifier(r.deps.Rules.Legacy).Classify(entries, protected, refs),
	}

	// Step 5: Broken internal links.
	if r.deps.Dangling {
		a.Dangling = classify.Dangling(entries, refs, r.deps.Rules.DanglingIgnore, cfg.SuggestThreshold)
	}
	return a, nil
}

// Legacy returns the records tagged LegacyPattern.
func (a *Analysis) Legacy() []types.OrphanRecord {
	var out []types.OrphanRecord
	for _, rec := range a.Records {
		if rec.Reason == types.LegacyPattern {
			out = append(out, rec)
		}
	}
	return out
}
