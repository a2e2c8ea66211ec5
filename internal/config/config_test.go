// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/routegraph/internal/rules"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	v := NewViper()
	v.Set("workdir", dir)

	require.NoError(t, ReadFile(v))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.WorkDir)
	assert.Equal(t, filepath.Join(dir, "app"), cfg.AppDir)
	assert.Equal(t, filepath.Join(dir, "public"), cfg.OutDir)
	assert.Equal(t, []string{dir}, cfg.SourceRoots)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, 0.6, cfg.SuggestThreshold)
	assert.Len(t, cfg.Protected, 5)
	assert.Len(t, cfg.Legacy, 1)
	require.Len(t, cfg.Datasets, 2)
	assert.Equal(t, filepath.Join(dir, "data", "cities.json"), cfg.Datasets[0].File)

	compiled, err := cfg.Compile()
	require.NoError(t, err)
	assert.True(t, compiled.Protected.Matches("/ut/ogden/dumpster-rental"))
	assert.True(t, compiled.Legacy.Matches("/dumpster-rental-ogden-ut"))
	assert.True(t, compiled.SitemapExclude.Matches("/api/quote"))
	assert.True(t, compiled.SitemapExclude.Matches("/blog/post-1"))
	assert.False(t, compiled.SitemapExclude.Matches("/about"))
	assert.Equal(t, 0, compiled.DanglingIgnore.Len())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `app_dir: src/app
base_url: https://www.example.com
source_roots: [src, content]
ignore: ["**/*.stories.tsx"]
protected:
  - name: home
    exact: /
  - prefix: /partners
legacy:
  - regex: ^/old-
dangling_ignore:
  - glob: /cdn-cgi/**
datasets:
  - name: cities
    file: /srv/data/cities.json
    template: /{value}/dumpster-rental
    priority: 0.9
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".routegraph.yaml"), []byte(yaml), 0o644))

	v := NewViper()
	v.Set("workdir", dir)
	require.NoError(t, ReadFile(v))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "src", "app"), cfg.AppDir)
	assert.Equal(t, "https://www.example.com", cfg.BaseURL)
	assert.Equal(t, []string{filepath.Join(dir, "src"), filepath.Join(dir, "content")}, cfg.SourceRoots)
	assert.Equal(t, []string{"**/*.stories.tsx"}, cfg.Ignore)
	require.Len(t, cfg.Protected, 2)
	assert.Equal(t, rules.Rule{Prefix: "/partners"}, cfg.Protected[1])
	require.Len(t, cfg.Datasets, 1)
	assert.Equal(t, "/srv/data/cities.json", cfg.Datasets[0].File)
	assert.Equal(t, 0.9, cfg.Datasets[0].Priority)

	compiled, err := cfg.Compile()
	require.NoError(t, err)
	assert.True(t, compiled.Legacy.Matches("/old-page"))
	assert.False(t, compiled.Legacy.Matches("/dumpster-rental-ogden-ut"))
	assert.True(t, compiled.DanglingIgnore.Matches("/cdn-cgi/l/email"))
}

func TestLoad_InvalidRule(t *testing.T) {
	dir := t.TempDir()
	yaml := "protected:\n  - exact: /\n    prefix: /api\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".routegraph.yaml"), []byte(yaml), 0o644))

	v := NewViper()
	v.Set("workdir", dir)
	require.NoError(t, ReadFile(v))
	_, err := Load(v)
	assert.ErrorIs(t, err, rules.ErrInvalidRule)
}

func TestLoad_SiteURLFromEnvironment(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_SITE_URL", "https://public.example.com")

	v := NewViper()
	v.Set("workdir", t.TempDir())
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://public.example.com", cfg.BaseURL)

	t.Setenv("ROUTEGRAPH_BASE_URL", "https://override.example.com")
	v = NewViper()
	v.Set("workdir", t.TempDir())
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.BaseURL)
}

func TestLoad_ScalarFromEnvironment(t *testing.T) {
	t.Setenv("ROUTEGRAPH_APP_DIR", "src/app")

	v := NewViper()
	dir := t.TempDir()
	v.Set("workdir", dir)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src", "app"), cfg.AppDir)
}

func TestReadFile_ExplicitMissing(t *testing.T) {
	v := NewViper()
	v.Set("config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, ReadFile(v))
}

func TestDump_RoundTrip(t *testing.T) {
	v := NewViper()
	v.Set("workdir", t.TempDir())
	cfg, err := Load(v)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf))
	assert.Contains(t, buf.String(), "base_url: http://localhost:3000")
	assert.NotContains(t, buf.String(), "glob:", "unset matchers are omitted")

	var back Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, cfg.AppDir, back.AppDir)
	assert.Equal(t, cfg.Protected, back.Protected)
	assert.Equal(t, cfg.SitemapExclude, back.SitemapExclude)
	assert.Equal(t, cfg.Datasets, back.Datasets)
}
