// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders analyzer, prune and sitemap results as the
// tab-separated text the commands print.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/petar-djukic/routegraph/internal/classify"
	"github.com/petar-djukic/routegraph/internal/prune"
	"github.com/petar-djukic/routegraph/internal/sitemap"
	"github.com/petar-djukic/routegraph/pkg/types"
)

// Printer writes reports to w. File paths under base are shown relative to
// it.
type Printer struct {
	w    io.Writer
	base string
}

// New creates a Printer. An empty base prints paths unchanged.
func New(w io.Writer, base string) *Printer {
	return &Printer{w: w, base: base}
}

// Summary returns the one-line analyzer summary.
func Summary(routes, protected, candidates int) string {
	return fmt.Sprintf("Found %d routes. Protected: %d. Candidates: %d.", routes, protected, candidates)
}

// Orphans prints the summary line followed by one route\tfile\treason row
// per record.
func (p *Printer) Orphans(routes, protected int, records []types.OrphanRecord) {
	fmt.Fprintln(p.w, Summary(routes, protected, len(records)))
	for _, rec := range records {
		fmt.Fprintf(p.w, "%s\t%s\t%s\n", rec.Route, p.rel(rec.SourceFile), rec.Reason)
	}
}

// Outcomes prints one line per deleted or failed record. Reported and
// skipped records were already listed by Orphans.
func (p *Printer) Outcomes(outcomes []prune.Outcome) {
	for _, o := range outcomes {
		switch o.Action {
		case prune.Deleted:
			fmt.Fprintf(p.w, "deleted\t%s\t%s\n", o.Record.Route, p.rel(o.Record.SourceFile))
		case prune.Failed:
			fmt.Fprintf(p.w, "failed\t%s\t%s: %v\n", o.Record.Route, p.rel(o.Record.SourceFile), o.Err)
		}
	}
}

// Dangling prints one path\tsources\tsuggestion row per link, sources
// comma-separated. A link without a suggestion prints "-".
func (p *Printer) Dangling(links []classify.DanglingLink) {
	fmt.Fprintf(p.w, "Dangling links: %d.\n", len(links))
	for _, l := range links {
		srcs := make([]string, len(l.Sources))
		for i, s := range l.Sources {
			srcs[i] = p.rel(s)
		}
		suggestion := "-"
		if l.Suggestion != "" {
			suggestion = fmt.Sprintf("did you mean %s?", l.Suggestion)
		}
		fmt.Fprintf(p.w, "%s\t%s\t%s\n", l.Path, strings.Join(srcs, ","), suggestion)
	}
}

// References prints one path\tfile:line\tidiom row per reference. Line 0
// (HTML documents) prints the file alone.
func (p *Printer) References(refs []types.Reference) {
	for _, r := range refs {
		loc := p.rel(r.SourceFile)
		if r.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, r.Line)
		}
		fmt.Fprintf(p.w, "%s\t%s\t%s\n", r.Path, loc, r.Idiom)
	}
}

// Sitemaps returns a one-line summary of a sitemap write with the entry
// count of every group, e.g. "pages=12 cities=40 posts=0".
func Sitemaps(res sitemap.Result) string {
	parts := make([]string, 0, len(res.Groups))
	for _, g := range res.Groups {
		part := fmt.Sprintf("%s=%d", g.Name, g.Count)
		if g.Err != nil {
			part += "(failed)"
		}
		parts = append(parts, part)
	}
	return "Sitemaps: " + strings.Join(parts, " ")
}

func (p *Printer) rel(path string) string {
	if p.base == "" {
		return path
	}
	r, err := filepath.Rel(p.base, path)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(r)
}
