// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prune acts on orphan records. The default mode only reports;
// apply mode deletes the files of legacy-pattern orphans and nothing else.
package prune

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/routegraph/pkg/types"
)

// ErrOutsideRoot is returned for a record whose file lies outside the
// routing root.
var ErrOutsideRoot = errors.New("file is outside the routing root")

// Mode selects whether the mutator touches the filesystem.
type Mode int

const (
	ModeReport Mode = iota // Read-only; the default
	ModeApply              // Delete LegacyPattern files
)

// Action is what happened to one record.
type Action int

const (
	Reported Action = iota // Report mode: listed only
	Deleted                // File removed, or already absent
	Skipped                // Not eligible for deletion
	Failed                 // Deletion attempted and failed
)

// String returns the lowercase name of the action.
func (a Action) String() string {
	switch a {
	case Reported:
		return "reported"
	case Deleted:
		return "deleted"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome records the action taken for one orphan record.
type Outcome struct {
	Record types.OrphanRecord
	Action Action
	Err    error // Set when Action is Failed
}

// Counts tallies outcomes by action.
type Counts struct {
	Reported, Deleted, Skipped, Failed int
}

// Tally counts outcomes by action.
func Tally(outcomes []Outcome) Counts {
	var c Counts
	for _, o := range outcomes {
		switch o.Action {
		case Reported:
			c.Reported++
		case Deleted:
			c.Deleted++
		case Skipped:
			c.Skipped++
		case Failed:
			c.Failed++
		}
	}
	return c
}

// Options configures a Mutator.
type Options struct {
	Mode   Mode
	Root   string // Routing root; empty directories are pruned up to, not including, it
	Logger *zap.Logger
}

// Mutator applies or reports orphan records.
type Mutator struct {
	mode Mode
	root string
	log  *zap.Logger
}

// New creates a Mutator.
func New(opts Options) *Mutator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	root := opts.Root
	if root != "" {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	return &Mutator{mode: opts.Mode, root: root, log: log}
}

// Run processes records in order and returns one outcome per record.
// Report mode performs no filesystem writes. Apply mode deletes only
// LegacyPattern files; a per-record failure is recorded and processing
// continues. The returned error is non-nil only when ctx is canceled, in
// which case the outcomes so far are returned with it.
func (m *Mutator) Run(ctx context.Context, records []types.OrphanRecord) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, m.process(rec))
	}
	return outcomes, nil
}

func (m *Mutator) process(rec types.OrphanRecord) Outcome {
	if m.mode != ModeApply {
		return Outcome{Record: rec, Action: Reported}
	}
	if rec.Reason != types.LegacyPattern {
		m.log.Debug("not deleting route without legacy pattern",
			zap.String("route", rec.Route), zap.Stringer("reason", rec.Reason))
		return Outcome{Record: rec, Action: Skipped}
	}

	file, err := filepath.Abs(rec.SourceFile)
	if err != nil {
		return m.fail(rec, err)
	}
	if m.root != "" && !within(m.root, file) {
		return m.fail(rec, fmt.Errorf("%w: %s", ErrOutsideRoot, rec.SourceFile))
	}

	if err := os.Remove(file); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return m.fail(rec, err)
		}
		m.log.Debug("file already absent", zap.String("file", rec.SourceFile))
	}
	m.log.Info("deleted legacy route", zap.String("route", rec.Route), zap.String("file", rec.SourceFile))

	if m.root != "" {
		m.pruneEmptyDirs(filepath.Dir(file))
	}
	return Outcome{Record: rec, Action: Deleted}
}

func (m *Mutator) fail(rec types.OrphanRecord, err error) Outcome {
	m.log.Warn("cannot delete route file",
		zap.String("route", rec.Route), zap.String("file", rec.SourceFile), zap.Error(err))
	return Outcome{Record: rec, Action: Failed, Err: err}
}

// pruneEmptyDirs removes dir and its ancestors while they are empty,
// stopping below the root.
func (m *Mutator) pruneEmptyDirs(dir string) {
	for dir != m.root && within(m.root, dir) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			m.log.Debug("cannot remove empty directory", zap.String("dir", dir), zap.Error(err))
			return
		}
		dir = filepath.Dir(dir)
	}
}

// within reports whether path is root or lies beneath it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
