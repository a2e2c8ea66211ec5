// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refscan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files under root from a map of relative path to content.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func TestScan_MultipleRoots(t *testing.T) {
	base := t.TempDir()
	app := filepath.Join(base, "app")
	content := filepath.Join(base, "content")

	writeFiles(t, app, map[string]string{
		".gitignore":                "# generated output\ngenerated/\n",
		"page.tsx":                  `<Link href="/about">About</Link>`,
		"about/page.tsx":            `<a href="/">Home</a>`,
		"node_modules/lib/index.js": `router.push('/from-node-modules')`,
		".next/server/page.js":      `router.push('/from-build')`,
		"generated/routes.ts":       `router.push('/generated')`,
		"styles.css":                `a { background: url("/bg.png") }`,
	})
	writeFiles(t, content, map[string]string{
		"posts/hello.md":  "Read [contact](/contact).",
		"legacy/old.tsx":  `<a href="/legacy-link">`,
		"static/map.html": `<a href="/about">About</a>`,
	})

	s := New(Config{
		Roots:  []string{app, content, filepath.Join(base, "missing")},
		Ignore: []string{"legacy/*.tsx"},
	})
	refs, stats, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/", "/about", "/contact"}, refs.Paths())
	assert.Equal(t, 4, stats.FilesScanned)
	assert.Equal(t, 3, stats.FilesSkipped) // .gitignore, styles.css, legacy/old.tsx
	assert.Equal(t, 0, stats.FilesFailed)
	assert.Equal(t, 5, stats.References) // page.tsx matches both href and link-component

	assert.Equal(t, []string{
		filepath.Join(app, "page.tsx"),
		filepath.Join(content, "static/map.html"),
	}, refs.Sources("/about"))
}

func TestScan_UnreadableFileCountedAndSkipped(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.tsx":       `<a href="/a">A</a>`,
		"nested/b.ts": `router.push("/b")`,
	})
	// A dangling symlink cannot be read even when tests run as root.
	require.NoError(t, os.Symlink(filepath.Join(root, "nope.tsx"), filepath.Join(root, "broken.tsx")))

	refs, stats, err := New(Config{Roots: []string{root}}).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/b"}, refs.Paths())
	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 1, stats.FilesFailed)
}

func TestScan_NoRoots(t *testing.T) {
	refs, stats, err := New(Config{}).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, refs.Len())
	assert.Equal(t, Stats{}, stats)
}

func TestScan_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.tsx":   `<a href="/a">`,
		"b/b.tsx": `router.push('/b')`,
		"c/c.md":  `[c](/c)`,
	})
	s := New(Config{Roots: []string{root, root}})

	first, _, err := s.Scan(context.Background())
	require.NoError(t, err)
	second, _, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Paths(), second.Paths())
	assert.Equal(t, []string{"/a", "/b", "/c"}, first.Paths())
}

func TestScan_Canceled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.tsx": `<a href="/a">`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New(Config{Roots: []string{root}}).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"nav.tsx": "<a href=\"/x\">\n<a href=\"/x\">"})

	refs, err := ScanFile(context.Background(), filepath.Join(root, "nav.tsx"), nil)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, 1, refs[0].Line)
	assert.Equal(t, 2, refs[1].Line)

	_, err = ScanFile(context.Background(), filepath.Join(root, "absent.tsx"), nil)
	assert.Error(t, err)
}

func TestGitignoreGlobs(t *testing.T) {
	tests := []struct {
		line string
		rel  string
		want bool
	}{
		{"generated/", "generated", true},
		{"generated/", "src/generated/x.ts", true},
		{"/build-cache", "build-cache/a.js", true},
		{"/build-cache", "src/build-cache/a.js", false},
		{"*.gen.ts", "src/api.gen.ts", true},
		{"*.gen.ts", "src/api.ts", false},
		{"src/tmp", "src/tmp/a.ts", true},
	}
	for _, tt := range tests {
		g := ignorer{patterns: gitignoreGlobs(tt.line)}
		assert.Equal(t, tt.want, g.isIgnored(tt.rel), "%s vs %s", tt.line, tt.rel)
	}
}
