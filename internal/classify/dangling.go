// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package classify

import (
	"path"

	"github.com/petar-djukic/routegraph/internal/routes"
	"github.com/petar-djukic/routegraph/internal/rules"
	"github.com/petar-djukic/routegraph/internal/suggest"
	"github.com/petar-djukic/routegraph/pkg/types"
)

// DanglingLink is a referenced path that no discovered route serves.
type DanglingLink struct {
	Path       string
	Sources    []string // Files containing the reference
	Suggestion string   // Closest static route; empty when none is similar
	Similarity float64
}

// Dangling lists referenced paths that match neither a static route nor a
// dynamic template, sorted by path. Asset-like paths (a final segment with
// an extension) and paths matched by ignore are skipped. threshold <= 0
// uses suggest.DefaultThreshold.
func Dangling(entries []types.RouteEntry, refs *types.ReferenceSet, ignore *rules.Set, threshold float64) []DanglingLink {
	static := make(map[string]bool)
	var candidates, templates []string
	for _, e := range entries {
		if e.Dynamic {
			templates = append(templates, e.Route)
			continue
		}
		if !static[e.Route] {
			static[e.Route] = true
			candidates = append(candidates, e.Route)
		}
	}

	var out []DanglingLink
	for _, p := range refs.Paths() {
		if static[p] || isAsset(p) || ignore.Matches(p) || anyTemplateMatches(templates, p) {
			continue
		}
		d := DanglingLink{Path: p, Sources: refs.Sources(p)}
		if m, ok := suggest.Closest(p, candidates, threshold); ok {
			d.Suggestion = m.Candidate
			d.Similarity = m.Similarity
		}
		out = append(out, d)
	}
	return out
}

func anyTemplateMatches(templates []string, p string) bool {
	for _, t := range templates {
		if routes.MatchTemplate(t, p) {
			return true
		}
	}
	return false
}

func isAsset(p string) bool {
	return path.Ext(path.Base(p)) != ""
}
