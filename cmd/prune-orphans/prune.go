// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petar-djukic/routegraph/internal/analyzer"
	"github.com/petar-djukic/routegraph/internal/config"
	gitpkg "github.com/petar-djukic/routegraph/internal/git"
	"github.com/petar-djukic/routegraph/internal/prune"
	"github.com/petar-djukic/routegraph/internal/report"
)

// runPrune analyzes the site, prints the report and, with --apply,
// deletes legacy-pattern pages. Report mode always exits 0 unless the
// analysis itself fails.
func runPrune(v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		apply, _ := cmd.Flags().GetBool("apply")
		commit, _ := cmd.Flags().GetBool("commit")
		dangling, _ := cmd.Flags().GetBool("dangling")

		cfg, log, err := setup(v)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		runner, err := analyzer.NewRunner(cfg, dangling, log)
		if err != nil {
			return err
		}
		a, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		out := report.New(os.Stdout, cfg.WorkDir)
		out.Orphans(len(a.Routes), a.Protected, a.Records)
		if dangling {
			out.Dangling(a.Dangling)
		}

		if !apply {
			if commit {
				log.Warn("--commit has no effect without --apply")
			}
			return nil
		}

		var repo *gitpkg.Repo
		if commit {
			if repo, err = openForCommit(cfg, log); err != nil {
				return err
			}
		}

		mutator := prune.New(prune.Options{Mode: prune.ModeApply, Root: cfg.AppDir, Logger: log})
		outcomes, runErr := mutator.Run(ctx, a.Records)
		out.Outcomes(outcomes)

		counts := prune.Tally(outcomes)
		log.Info("prune finished",
			zap.Int("deleted", counts.Deleted),
			zap.Int("failed", counts.Failed),
			zap.Int("left_for_review", counts.Skipped))

		if repo != nil && counts.Deleted > 0 {
			commitRemovals(repo, outcomes, log)
		}
		return runErr
	}
}

// openForCommit opens the repository the deletions will be committed to.
// A missing repository yields nil and a warning. Staged changes refuse the
// run before anything is deleted, so the prune commit holds only pruned
// files.
func openForCommit(cfg *config.Config, log *zap.Logger) (*gitpkg.Repo, error) {
	repo, err := gitpkg.Open(gitpkg.Config{WorkDir: cfg.WorkDir})
	if err != nil {
		if errors.Is(err, gitpkg.ErrNoGit) {
			log.Warn("not a git repository; deletions will be left uncommitted", zap.String("workdir", cfg.WorkDir))
			return nil, nil
		}
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	staged, err := repo.StagedChanges()
	if err != nil {
		return nil, err
	}
	if len(staged) > 0 {
		return nil, fmt.Errorf("%w: commit or unstage %s before pruning with --commit",
			gitpkg.ErrStagedChanges, strings.Join(staged, ", "))
	}
	return repo, nil
}

// commitRemovals commits the deleted files. Git problems are logged; the
// deletions stand either way.
func commitRemovals(repo *gitpkg.Repo, outcomes []prune.Outcome, log *zap.Logger) {
	var removals []gitpkg.Removal
	for _, o := range outcomes {
		if o.Action == prune.Deleted {
			removals = append(removals, gitpkg.Removal{Path: o.Record.SourceFile, Route: o.Record.Route})
		}
	}

	hash, err := repo.CommitRemovals(removals)
	switch {
	case errors.Is(err, gitpkg.ErrNothingToCommit):
		log.Info("deleted files were not tracked; nothing to commit")
	case err != nil:
		log.Error("committing deletions", zap.Error(err))
	default:
		fmt.Printf("committed\t%s\n", hash.String()[:7])
	}
}

// newUndoCmd creates the "undo" command.
func newUndoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last prune commit",
		Long:  "Undo resets the last commit if it was made by prune-orphans --commit and restores the deleted pages.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(v)
			if err != nil {
				return err
			}
			defer log.Sync()

			repo, err := gitpkg.Open(gitpkg.Config{WorkDir: cfg.WorkDir})
			if err != nil {
				return fmt.Errorf("opening repository: %w", err)
			}

			restored, err := repo.Undo()
			if err != nil {
				return fmt.Errorf("undo failed: %w", err)
			}
			for _, p := range restored {
				fmt.Printf("restored\t%s\n", p)
			}
			log.Info("reverted last prune commit", zap.Int("restored", len(restored)))
			return nil
		},
	}
}
