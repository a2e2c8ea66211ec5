// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitRemovals(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: filepath.Join(dir, "app")})
	require.NoError(t, err)

	legacy := filepath.Join(dir, "app", "dumpster-rental-ogden-ut", "page.tsx")
	require.NoError(t, os.RemoveAll(filepath.Dir(legacy)))

	hash, err := repo.CommitRemovals([]Removal{{Path: legacy, Route: "/dumpster-rental-ogden-ut"}})
	require.NoError(t, err)
	assert.False(t, hash.IsZero())

	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.True(t, worktreeClean(t, dir))

	msg, err := repo.lastCommitMessage()
	require.NoError(t, err)
	assert.Contains(t, msg, "chore: prune 1 legacy route")
	assert.Contains(t, msg, "- /dumpster-rental-ogden-ut (app/dumpster-rental-ogden-ut/page.tsx)")
	assert.Contains(t, msg, pruneTrailer)
}

func TestCommitRemovals_RefusesStagedChanges(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "wip.md"), []byte("draft\n"), 0o644))
	stage(t, dir, "wip.md")

	legacy := filepath.Join(dir, "app", "dumpster-rental-ogden-ut", "page.tsx")
	require.NoError(t, os.Remove(legacy))

	_, err = repo.CommitRemovals([]Removal{{Path: legacy, Route: "/dumpster-rental-ogden-ut"}})
	require.ErrorIs(t, err, ErrStagedChanges)
	assert.Contains(t, err.Error(), "wip.md")

	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	staged, err := repo.StagedChanges()
	require.NoError(t, err)
	assert.Equal(t, []string{"wip.md"}, staged, "the legacy deletion is not staged")
}

func TestCommitRemovals_UntrackedOnly(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	_, err = repo.CommitRemovals([]Removal{{Path: filepath.Join(dir, "app", "never-tracked", "page.tsx")}})
	assert.ErrorIs(t, err, ErrNothingToCommit)
}

func TestCommitRemovals_OutsideRepo(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	_, err = repo.CommitRemovals([]Removal{{Path: filepath.Join(t.TempDir(), "page.tsx")}})
	assert.Error(t, err)
}

func TestUndo_RestoresRemovedFiles(t *testing.T) {
	dir := initTestRepo(t)
	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	legacy := filepath.Join(dir, "app", "dumpster-rental-ogden-ut", "page.tsx")
	original, err := os.ReadFile(legacy)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(filepath.Dir(legacy)))

	_, err = repo.CommitRemovals([]Removal{{Path: legacy, Route: "/dumpster-rental-ogden-ut"}})
	require.NoError(t, err)

	restored, err := repo.Undo()
	require.NoError(t, err)
	assert.Equal(t, []string{"app/dumpster-rental-ogden-ut/page.tsx"}, restored)

	got, err := os.ReadFile(legacy)
	require.NoError(t, err)
	assert.Equal(t, original, got)

	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.True(t, worktreeClean(t, dir))
}

func TestUndo_RejectsOtherCommits(t *testing.T) {
	dir := initTestRepo(t)
	addFileAndCommit(t, dir, "notes.md", "x\n", "docs: add notes")

	repo, err := Open(Config{WorkDir: dir})
	require.NoError(t, err)

	_, err = repo.Undo()
	assert.ErrorIs(t, err, ErrNotPruneCommit)

	count, err := repo.commitCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
