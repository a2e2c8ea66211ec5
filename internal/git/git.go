// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git records pruned route files as a single commit and undoes
// such a commit.
package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// pruneTrailer marks commits created by CommitRemovals.
const pruneTrailer = "Pruned-By: routegraph"

// ErrNotPruneCommit is returned when undo targets a commit that did not come
// from a prune run.
var ErrNotPruneCommit = errors.New("not a prune commit")

// ErrNoGit is returned when the working directory is not inside a git
// repository.
var ErrNoGit = errors.New("not a git repository")

// ErrStagedChanges is returned by CommitRemovals when the index already
// holds changes that would end up in the prune commit.
var ErrStagedChanges = errors.New("index has staged changes")

// ErrNothingToCommit is returned when none of the removed files were
// tracked.
var ErrNothingToCommit = errors.New("no tracked files were removed")

// Config configures git integration.
type Config struct {
	WorkDir     string // Any directory inside the repository
	AuthorName  string // Defaults to "routegraph"
	AuthorEmail string // Defaults to "noreply@routegraph"
}

// Repo wraps a go-git repository for the operations we need.
type Repo struct {
	repo *gogit.Repository
	root string // Worktree root, symlinks resolved
	cfg  Config
}

// Open opens the repository containing cfg.WorkDir, searching parent
// directories for .git. Returns ErrNoGit if there is none.
func Open(cfg Config) (*Repo, error) {
	if cfg.AuthorName == "" {
		cfg.AuthorName = "routegraph"
	}
	if cfg.AuthorEmail == "" {
		cfg.AuthorEmail = "noreply@routegraph"
	}

	r, err := gogit.PlainOpenWithOptions(cfg.WorkDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return &Repo{repo: r, root: resolve(wt.Filesystem.Root()), cfg: cfg}, nil
}

// Root returns the worktree root directory.
func (r *Repo) Root() string {
	return r.root
}

// StagedChanges returns the sorted paths whose index entry differs from
// HEAD. Untracked and unstaged files are not included.
func (r *Repo) StagedChanges() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	var staged []string
	for path, s := range status {
		if s.Staging != gogit.Unmodified && s.Staging != gogit.Untracked {
			staged = append(staged, path)
		}
	}
	sort.Strings(staged)
	return staged, nil
}

// IsPruneCommit checks whether HEAD was made by CommitRemovals by looking
// for the Pruned-By trailer.
func (r *Repo) IsPruneCommit() (bool, error) {
	msg, err := r.lastCommitMessage()
	if err != nil {
		return false, err
	}
	return strings.Contains(msg, pruneTrailer), nil
}

// relPath converts a path to a slash-separated path relative to the
// worktree root. Paths outside the worktree are rejected.
func (r *Repo) relPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(r.root, resolve(abs))
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository", path)
	}
	return filepath.ToSlash(rel), nil
}

// lastCommitMessage returns the message of the HEAD commit.
func (r *Repo) lastCommitMessage() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("getting commit: %w", err)
	}
	return commit.Message, nil
}

// commitCount returns the total number of commits reachable from HEAD.
func (r *Repo) commitCount() (int, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{})
	if err != nil {
		return 0, err
	}
	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		count++
		return nil
	})
	return count, err
}

// resolve evaluates symlinks in the longest existing prefix of path, so a
// deleted file still maps onto the resolved worktree root.
func resolve(path string) string {
	if p, err := filepath.EvalSymlinks(path); err == nil {
		return p
	}
	dir, base := filepath.Split(filepath.Clean(path))
	dir = filepath.Clean(dir)
	if dir == path || dir == "" {
		return path
	}
	return filepath.Join(resolve(dir), base)
}
