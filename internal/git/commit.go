// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Removal is one pruned file and the route it served.
type Removal struct {
	Path  string // File path, absolute or relative to the process
	Route string
}

// CommitRemovals stages the deletion of every tracked file in removals and
// commits them with a generated message. Files that were never tracked
// are skipped. Returns ErrStagedChanges, touching nothing, when the index
// already holds staged changes.
func (r *Repo) CommitRemovals(removals []Removal) (plumbing.Hash, error) {
	pending, err := r.StagedChanges()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if len(pending) > 0 {
		return plumbing.ZeroHash, fmt.Errorf("%w: %s", ErrStagedChanges, strings.Join(pending, ", "))
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting worktree: %w", err)
	}

	var staged []Removal
	for _, rm := range removals {
		rel, err := r.relPath(rm.Path)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("staging %s: %w", rm.Path, err)
		}
		if _, err := wt.Remove(rel); err != nil {
			if errors.Is(err, index.ErrEntryNotFound) {
				continue
			}
			return plumbing.ZeroHash, fmt.Errorf("staging %s: %w", rel, err)
		}
		staged = append(staged, Removal{Path: rel, Route: rm.Route})
	}
	if len(staged) == 0 {
		return plumbing.ZeroHash, ErrNothingToCommit
	}

	hash, err := wt.Commit(GenerateMessage(staged), &gogit.CommitOptions{
		Author: r.signature(),
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("committing: %w", err)
	}
	return hash, nil
}

// Undo reverts the last commit if it was made by CommitRemovals. HEAD and
// the index move back to the parent and the removed files are written
// back to the worktree. Returns the restored paths, relative to the
// worktree root.
func (r *Repo) Undo() ([]string, error) {
	isPrune, err := r.IsPruneCommit()
	if err != nil {
		return nil, err
	}
	if !isPrune {
		return nil, ErrNotPruneCommit
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting commit: %w", err)
	}
	if commit.NumParents() == 0 {
		return nil, fmt.Errorf("cannot undo: HEAD is the initial commit")
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("getting parent commit: %w", err)
	}

	restored, err := r.restoreRemoved(parent, commit)
	if err != nil {
		return restored, err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return restored, fmt.Errorf("getting worktree: %w", err)
	}
	err = wt.Reset(&gogit.ResetOptions{
		Commit: parent.Hash,
		Mode:   gogit.MixedReset,
	})
	if err != nil {
		return restored, fmt.Errorf("resetting to parent: %w", err)
	}
	return restored, nil
}

// restoreRemoved writes every file present in parent but absent from
// commit back to the worktree.
func (r *Repo) restoreRemoved(parent, commit *object.Commit) ([]string, error) {
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading parent tree: %w", err)
	}
	headTree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD tree: %w", err)
	}

	var restored []string
	err = parentTree.Files().ForEach(func(f *object.File) error {
		if _, err := headTree.File(f.Name); err == nil {
			return nil
		} else if !errors.Is(err, object.ErrFileNotFound) {
			return err
		}

		contents, err := f.Contents()
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.Name, err)
		}
		mode, err := f.Mode.ToOSFileMode()
		if err != nil {
			mode = 0o644
		}
		abs := filepath.Join(r.root, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return fmt.Errorf("restoring %s: %w", f.Name, err)
		}
		if err := os.WriteFile(abs, []byte(contents), mode.Perm()); err != nil {
			return fmt.Errorf("restoring %s: %w", f.Name, err)
		}
		restored = append(restored, f.Name)
		return nil
	})
	return restored, err
}

func (r *Repo) signature() *object.Signature {
	return &object.Signature{
		Name:  r.cfg.AuthorName,
		Email: r.cfg.AuthorEmail,
		When:  time.Now(),
	}
}
