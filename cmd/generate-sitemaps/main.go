// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command generate-sitemaps writes the sitemap documents of an app-router
// site and the sitemap index that lists them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petar-djukic/routegraph/internal/config"
	"github.com/petar-djukic/routegraph/internal/logging"
	"github.com/petar-djukic/routegraph/internal/report"
	"github.com/petar-djukic/routegraph/internal/sitemap"
)

const version = "0.1.0"

func main() {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:           "generate-sitemaps",
		Short:         "Generate sitemap XML for an app-router site",
		Long:          "generate-sitemaps writes sitemap-pages.xml from the routing tree, one sitemap per non-empty dataset, and the sitemap.xml index. It fails only when the output directory cannot be created.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate(v),
	}

	// Global flags.
	rootCmd.PersistentFlags().String("workdir", ".", "Project root directory")
	rootCmd.PersistentFlags().String("config", "", "Config file (default <workdir>/.routegraph.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Bind flags to viper.
	v.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))
	v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.Flags().Bool("watch", false, "Regenerate when pages or dataset files change")
	rootCmd.Flags().Duration("debounce", sitemap.DefaultDebounce, "Quiet period before regenerating in watch mode")

	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runGenerate writes the sitemaps once, or keeps them current with --watch.
func runGenerate(v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		debounce, _ := cmd.Flags().GetDuration("debounce")

		if err := config.ReadFile(v); err != nil {
			return err
		}
		cfg, err := config.Load(v)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		log := logging.New(os.Stderr, cfg.Verbose)
		defer log.Sync()

		compiled, err := cfg.Compile()
		if err != nil {
			return err
		}
		opts := sitemap.Options{
			AppDir:         cfg.AppDir,
			BaseURL:        cfg.BaseURL,
			Exclude:        compiled.SitemapExclude,
			Markers:        cfg.Markers,
			PageChangeFreq: cfg.PageChangeFreq,
			PagePriority:   cfg.PagePriority,
			Datasets:       cfg.Datasets,
			Logger:         log,
		}

		if !watch {
			res, err := sitemap.Generate(opts, cfg.OutDir)
			if err != nil {
				return err
			}
			log.Info(report.Sitemaps(res), zap.String("out_dir", cfg.OutDir))
			return nil
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		w, err := sitemap.NewWatcher(opts, cfg.OutDir, debounce, func(res sitemap.Result, err error) {
			if err != nil {
				log.Error("generating sitemaps", zap.Error(err))
				return
			}
			log.Info(report.Sitemaps(res), zap.String("out_dir", cfg.OutDir))
		})
		if err != nil {
			return err
		}
		log.Info("watching for changes", zap.String("app_dir", cfg.AppDir))
		return w.Run(ctx)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print generate-sitemaps version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("generate-sitemaps %s\n", version)
		},
	}
}
