// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads routegraph settings from flags, environment and an
// optional .routegraph.yaml file.
package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/routegraph/internal/refscan"
	"github.com/petar-djukic/routegraph/internal/routes"
	"github.com/petar-djukic/routegraph/internal/rules"
	"github.com/petar-djukic/routegraph/internal/sitemap"
	"github.com/petar-djukic/routegraph/internal/suggest"
)

const (
	// FileName is the config file searched for in the workdir, without
	// extension.
	FileName  = ".routegraph"
	envPrefix = "ROUTEGRAPH"

	defaultAppDir  = "app"
	defaultOutDir  = "public"
	defaultBaseURL = "http://localhost:3000"
)

// Config holds every setting of both commands. Relative paths are resolved
// against WorkDir by Load.
type Config struct {
	WorkDir string `mapstructure:"workdir" yaml:"workdir"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`

	AppDir      string   `mapstructure:"app_dir" yaml:"app_dir"`
	Markers     []string `mapstructure:"markers" yaml:"markers"`
	SourceRoots []string `mapstructure:"source_roots" yaml:"source_roots"`
	Extensions  []string `mapstructure:"extensions" yaml:"extensions"`
	SkipDirs    []string `mapstructure:"skip_dirs" yaml:"skip_dirs"`
	Ignore      []string `mapstructure:"ignore" yaml:"ignore"`
	Concurrency int      `mapstructure:"concurrency" yaml:"concurrency"`

	Protected        []rules.Rule `mapstructure:"protected" yaml:"protected"`
	Legacy           []rules.Rule `mapstructure:"legacy" yaml:"legacy"`
	DanglingIgnore   []rules.Rule `mapstructure:"dangling_ignore" yaml:"dangling_ignore"`
	SuggestThreshold float64      `mapstructure:"suggest_threshold" yaml:"suggest_threshold"`

	BaseURL        string            `mapstructure:"base_url" yaml:"base_url"`
	OutDir         string            `mapstructure:"out_dir" yaml:"out_dir"`
	SitemapExclude []rules.Rule      `mapstructure:"sitemap_exclude" yaml:"sitemap_exclude"`
	Datasets       []sitemap.Dataset `mapstructure:"datasets" yaml:"datasets"`
	PageChangeFreq string            `mapstructure:"page_changefreq" yaml:"page_changefreq"`
	PagePriority   float64           `mapstructure:"page_priority" yaml:"page_priority"`
}

// Rules holds the compiled rule sets of a Config.
type Rules struct {
	Protected      *rules.Set
	Legacy         *rules.Set
	DanglingIgnore *rules.Set
	SitemapExclude *rules.Set
}

// legacyDumpsterRental matches the flat city URLs replaced by
// /[state]/[city]/dumpster-rental.
const legacyDumpsterRental = `^/dumpster-rental-[a-z0-9-]+-[a-z]{2}$`

// DefaultProtected returns the built-in protected routes.
func DefaultProtected() []rules.Rule {
	return []rules.Rule{
		{Name: "home", Exact: "/"},
		{Name: "sitemap", Exact: "/sitemap.xml"},
		{Name: "robots", Exact: "/robots.txt"},
		{Name: "city-page", Template: "/[state]/[city]/dumpster-rental"},
		{Name: "blog", Prefix: "/blog"},
	}
}

// DefaultLegacy returns the built-in legacy URL shapes.
func DefaultLegacy() []rules.Rule {
	return []rules.Rule{
		{Name: "flat-city-page", Regex: legacyDumpsterRental},
	}
}

// DefaultSitemapExclude returns the routes kept out of the pages sitemap.
func DefaultSitemapExclude() []rules.Rule {
	return []rules.Rule{
		{Prefix: "/api"},
		{Prefix: "/admin"},
		{Prefix: "/test"},
		{Prefix: "/thank-you"},
		{Prefix: "/checkout"},
		{Prefix: "/success"},
		{Name: "posts-sitemap", Prefix: "/blog"},
		{Name: "cities-sitemap", Template: "/[state]/[city]/dumpster-rental"},
		{Name: "flat-city-page", Regex: legacyDumpsterRental},
		{Exact: "/sitemap.xml"},
		{Exact: "/robots.txt"},
	}
}

// DefaultDatasets returns the cities and posts datasets.
func DefaultDatasets() []sitemap.Dataset {
	return []sitemap.Dataset{
		{Name: "cities", File: filepath.Join("data", "cities.json"), Template: "/{value}/dumpster-rental", ChangeFreq: "weekly", Priority: 0.8},
		{Name: "posts", File: filepath.Join("data", "posts.json"), Template: "/blog/{value}", ChangeFreq: "monthly", Priority: 0.6},
	}
}

var envKeys = []string{
	"workdir", "verbose", "app_dir", "concurrency", "suggest_threshold",
	"out_dir", "page_changefreq", "page_priority",
}

// NewViper returns a viper instance reading ROUTEGRAPH_* variables, with
// NEXT_PUBLIC_SITE_URL as a fallback for base_url.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees keys viper knows about, so scalar keys are bound
	// explicitly.
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	_ = v.BindEnv("base_url", envPrefix+"_BASE_URL", "NEXT_PUBLIC_SITE_URL")
	return v
}

// ReadFile loads the config file named by the "config" key, or searches
// the workdir for .routegraph.yaml. A missing searched-for file is not an
// error.
func ReadFile(v *viper.Viper) error {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		workDir := v.GetString("workdir")
		if workDir == "" {
			workDir = "."
		}
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(workDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load decodes v into a Config, fills defaults and resolves paths.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	applyDefaults(&cfg)
	if err := resolvePaths(&cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Compile(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Dump writes the effective configuration to w as YAML.
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// Compile compiles every rule list.
func (c *Config) Compile() (Rules, error) {
	var r Rules
	var err error
	if r.Protected, err = rules.Compile(c.Protected); err != nil {
		return Rules{}, fmt.Errorf("protected: %w", err)
	}
	if r.Legacy, err = rules.Compile(c.Legacy); err != nil {
		return Rules{}, fmt.Errorf("legacy: %w", err)
	}
	if r.DanglingIgnore, err = rules.Compile(c.DanglingIgnore); err != nil {
		return Rules{}, fmt.Errorf("dangling_ignore: %w", err)
	}
	if r.SitemapExclude, err = rules.Compile(c.SitemapExclude); err != nil {
		return Rules{}, fmt.Errorf("sitemap_exclude: %w", err)
	}
	return r, nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.AppDir == "" {
		cfg.AppDir = defaultAppDir
	}
	if len(cfg.Markers) == 0 {
		cfg.Markers = append([]string(nil), routes.DefaultMarkers...)
	}
	if len(cfg.SourceRoots) == 0 {
		cfg.SourceRoots = []string{"."}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), refscan.DefaultExtensions...)
	}
	if len(cfg.SkipDirs) == 0 {
		cfg.SkipDirs = append([]string(nil), refscan.DefaultSkipDirs...)
	}
	if len(cfg.Protected) == 0 {
		cfg.Protected = DefaultProtected()
	}
	if len(cfg.Legacy) == 0 {
		cfg.Legacy = DefaultLegacy()
	}
	if cfg.SuggestThreshold == 0 {
		cfg.SuggestThreshold = suggest.DefaultThreshold
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.OutDir == "" {
		cfg.OutDir = defaultOutDir
	}
	if len(cfg.SitemapExclude) == 0 {
		cfg.SitemapExclude = DefaultSitemapExclude()
	}
	if len(cfg.Datasets) == 0 {
		cfg.Datasets = DefaultDatasets()
	}
}

// resolvePaths makes WorkDir absolute and every other path relative to it.
func resolvePaths(cfg *Config) error {
	abs, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("resolving workdir: %w", err)
	}
	cfg.WorkDir = abs

	cfg.AppDir = cfg.under(cfg.AppDir)
	cfg.OutDir = cfg.under(cfg.OutDir)
	for i, r := range cfg.SourceRoots {
		cfg.SourceRoots[i] = cfg.under(r)
	}
	for i := range cfg.Datasets {
		cfg.Datasets[i].File = cfg.under(cfg.Datasets[i].File)
	}
	return nil
}

func (c *Config) under(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.WorkDir, p)
}
