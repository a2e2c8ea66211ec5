// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petar-djukic/routegraph/internal/classify"
	"github.com/petar-djukic/routegraph/internal/prune"
	"github.com/petar-djukic/routegraph/internal/sitemap"
	"github.com/petar-djukic/routegraph/pkg/types"
)

var base = filepath.Join(string(filepath.Separator), "site")

func file(rel string) string {
	return filepath.Join(base, filepath.FromSlash(rel))
}

func TestOrphans(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, base).Orphans(5, 3, []types.OrphanRecord{
		{Route: "/dumpster-rental-ogden-ut", SourceFile: file("app/dumpster-rental-ogden-ut/page.tsx"), Reason: types.LegacyPattern},
		{Route: "/pricing", SourceFile: file("app/pricing/page.tsx"), Reason: types.NoInboundLinks},
	})

	assert.Equal(t, "Found 5 routes. Protected: 3. Candidates: 2.\n"+
		"/dumpster-rental-ogden-ut\tapp/dumpster-rental-ogden-ut/page.tsx\tlegacy-pattern\n"+
		"/pricing\tapp/pricing/page.tsx\tno-inbound-links\n", buf.String())
}

func TestOrphans_Empty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "").Orphans(2, 2, nil)
	assert.Equal(t, "Found 2 routes. Protected: 2. Candidates: 0.\n", buf.String())
}

func TestOutcomes(t *testing.T) {
	legacy := types.OrphanRecord{Route: "/dumpster-rental-ogden-ut", SourceFile: file("app/dumpster-rental-ogden-ut/page.tsx"), Reason: types.LegacyPattern}
	locked := types.OrphanRecord{Route: "/dumpster-rental-provo-ut", SourceFile: file("app/dumpster-rental-provo-ut/page.tsx"), Reason: types.LegacyPattern}
	review := types.OrphanRecord{Route: "/pricing", SourceFile: file("app/pricing/page.tsx"), Reason: types.NoInboundLinks}

	var buf bytes.Buffer
	New(&buf, base).Outcomes([]prune.Outcome{
		{Record: legacy, Action: prune.Deleted},
		{Record: locked, Action: prune.Failed, Err: errors.New("permission denied")},
		{Record: review, Action: prune.Skipped},
	})

	assert.Equal(t, "deleted\t/dumpster-rental-ogden-ut\tapp/dumpster-rental-ogden-ut/page.tsx\n"+
		"failed\t/dumpster-rental-provo-ut\tapp/dumpster-rental-provo-ut/page.tsx: permission denied\n", buf.String())
}

func TestDangling(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, base).Dangling([]classify.DanglingLink{
		{Path: "/contatc", Sources: []string{file("app/page.tsx"), file("components/Footer.tsx")}, Suggestion: "/contact", Similarity: 0.86},
		{Path: "/zzzz", Sources: []string{file("app/page.tsx")}},
	})

	assert.Equal(t, "Dangling links: 2.\n"+
		"/contatc\tapp/page.tsx,components/Footer.tsx\tdid you mean /contact?\n"+
		"/zzzz\tapp/page.tsx\t-\n", buf.String())
}

func TestReferences(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, base).References([]types.Reference{
		{Path: "/about", SourceFile: file("components/Nav.tsx"), Line: 4, Idiom: "href-object"},
		{Path: "/contact", SourceFile: file("public/map.html"), Idiom: "html-anchor"},
	})

	assert.Equal(t, "/about\tcomponents/Nav.tsx:4\thref-object\n"+
		"/contact\tpublic/map.html\thtml-anchor\n", buf.String())
}

func TestRel_OutsideBase(t *testing.T) {
	p := New(nil, base)
	outside := filepath.Join(string(filepath.Separator), "elsewhere", "page.tsx")
	assert.Equal(t, outside, p.rel(outside))
	assert.Equal(t, "app/page.tsx", p.rel(file("app/page.tsx")))
}

func TestSitemaps(t *testing.T) {
	line := Sitemaps(sitemap.Result{Groups: []sitemap.GroupResult{
		{Name: "pages", Count: 12, Written: true},
		{Name: "cities", Count: 40, Written: true},
		{Name: "posts", Count: 3, Err: errors.New("disk full")},
	}})
	assert.Equal(t, "Sitemaps: pages=12 cities=40 posts=3(failed)", line)
}
