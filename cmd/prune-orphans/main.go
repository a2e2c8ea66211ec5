// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command prune-orphans reports app-router pages that nothing links to and
// deletes legacy-pattern pages on request.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petar-djukic/routegraph/internal/config"
	"github.com/petar-djukic/routegraph/internal/logging"
	"github.com/petar-djukic/routegraph/internal/refscan"
	"github.com/petar-djukic/routegraph/internal/report"
)

const version = "0.1.0"

func main() {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:           "prune-orphans",
		Short:         "Find and prune orphaned app-router pages",
		Long:          "prune-orphans discovers every page under the routing tree, scans the source for internal links, and reports pages that are legacy URL shapes or have no inbound links. With --apply it deletes legacy-pattern pages only.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPrune(v),
	}

	// Global flags.
	rootCmd.PersistentFlags().String("workdir", ".", "Project root directory")
	rootCmd.PersistentFlags().String("config", "", "Config file (default <workdir>/.routegraph.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Bind flags to viper.
	v.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))
	v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.Flags().Bool("apply", false, "Delete legacy-pattern pages")
	rootCmd.Flags().Bool("commit", false, "Commit the deletions with git (requires --apply)")
	rootCmd.Flags().Bool("dangling", false, "Also list links to paths no page serves")

	// Add commands.
	rootCmd.AddCommand(newUndoCmd(v))
	rootCmd.AddCommand(newRefsCmd(v))
	rootCmd.AddCommand(newConfigCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup reads the config file, loads the config and builds the logger.
func setup(v *viper.Viper) (*config.Config, *zap.Logger, error) {
	if err := config.ReadFile(v); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, logging.New(os.Stderr, cfg.Verbose), nil
}

// newConfigCmd creates the "config" command.
func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(v)
			if err != nil {
				return err
			}
			defer log.Sync()
			return cfg.Dump(os.Stdout)
		},
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print prune-orphans version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("prune-orphans %s\n", version)
		},
	}
}

// newRefsCmd creates the "refs" command.
func newRefsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "refs FILE...",
		Short: "List the internal links the scanner finds in files",
		Long:  "Refs prints the path, line and idiom of every reference found in each file, to check why a page is or is not considered linked.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(v)
			if err != nil {
				return err
			}
			defer log.Sync()

			out := report.New(os.Stdout, cfg.WorkDir)
			for _, file := range args {
				refs, err := refscan.ScanFile(cmd.Context(), file, nil)
				if err != nil {
					log.Warn("cannot scan file", zap.String("path", file), zap.Error(err))
					continue
				}
				out.References(refs)
			}
			return nil
		},
	}
}
