// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/routegraph/internal/config"
	"github.com/petar-djukic/routegraph/pkg/types"
)

const page = "export default function Page() { return null }\n"

// setupSite writes files (relative path to content) under a fresh workdir
// and returns the loaded default config for it.
func setupSite(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	v := config.NewViper()
	v.Set("workdir", dir)
	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func TestRun_ExampleScenario(t *testing.T) {
	cfg := setupSite(t, map[string]string{
		"app/page.tsx":                          page,
		"app/about/page.tsx":                    page,
		"app/blog/post-1/page.mdx":              "# Post\n",
		"app/dumpster-rental-ogden-ut/page.tsx": page,
		"app/ut/ogden/dumpster-rental/page.tsx": page,
		"components/Nav.tsx": `export function Nav() {
  return (
    <nav>
      <Link href="/">Home</Link>
      <Link href="/about">About</Link>
      <a href="/ut/ogden/dumpster-rental">Ogden</a>
    </nav>
  )
}
`,
	})

	r, err := NewRunner(cfg, false, nil)
	require.NoError(t, err)
	a, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, a.Routes, 5)
	assert.Equal(t, 3, a.Protected)
	assert.Equal(t, []string{"/", "/about", "/ut/ogden/dumpster-rental"}, a.Refs.Paths())
	require.Len(t, a.Records, 1)
	assert.Equal(t, "/dumpster-rental-ogden-ut", a.Records[0].Route)
	assert.Equal(t, types.LegacyPattern, a.Records[0].Reason)
	assert.Equal(t, filepath.Join(cfg.AppDir, "dumpster-rental-ogden-ut", "page.tsx"), a.Records[0].SourceFile)
	assert.Equal(t, a.Records, a.Legacy())
	assert.Nil(t, a.Dangling)
}

func TestRun_NoInboundLinksAndDynamic(t *testing.T) {
	cfg := setupSite(t, map[string]string{
		"app/page.tsx":                 `<Link href="/services/roll-off">Roll-off</Link>`,
		"app/services/[slug]/page.tsx": page,
		"app/pricing/page.tsx":         page,
		"app/contact/page.tsx":         page,
		"lib/nav.ts":                   `// router.push("/contact")` + "\n",
	})

	r, err := NewRunner(cfg, false, nil)
	require.NoError(t, err)
	a, err := r.Run(context.Background())
	require.NoError(t, err)

	var got []string
	for _, rec := range a.Records {
		assert.Equal(t, types.NoInboundLinks, rec.Reason)
		got = append(got, rec.Route)
	}
	assert.Equal(t, []string{"/contact", "/pricing"}, got, "commented references do not count")
	assert.Empty(t, a.Legacy())
}

func TestRun_Dangling(t *testing.T) {
	cfg := setupSite(t, map[string]string{
		"app/page.tsx":         `<Link href="/contatc">Contact</Link> <img src="/logo.png" /> <a href="/logo.png">x</a>`,
		"app/contact/page.tsx": `<Link href="/">Home</Link>`,
	})

	r, err := NewRunner(cfg, true, nil)
	require.NoError(t, err)
	a, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, a.Dangling, 1)
	assert.Equal(t, "/contatc", a.Dangling[0].Path)
	assert.Equal(t, "/contact", a.Dangling[0].Suggestion)
	assert.Equal(t, []string{filepath.Join(cfg.AppDir, "page.tsx")}, a.Dangling[0].Sources)
}

func TestRun_Canceled(t *testing.T) {
	cfg := setupSite(t, map[string]string{"app/page.tsx": page})

	r, err := NewRunner(cfg, false, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
