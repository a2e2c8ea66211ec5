// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sitemap assembles sitemap documents from the static routes of a
// routing tree and from JSON datasets enumerating dynamic routes, and
// writes them together with a sitemap index.
package sitemap

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/petar-djukic/routegraph/internal/routes"
	"github.com/petar-djukic/routegraph/internal/rules"
	"github.com/petar-djukic/routegraph/pkg/types"
)

// PagesGroup is the name of the group built from discovered routes.
const PagesGroup = "pages"

// Group is one sitemap document.
type Group struct {
	Name    string
	Entries []types.SitemapEntry
}

// FileName returns the document file name, sitemap-<name>.xml.
func (g Group) FileName() string {
	return "sitemap-" + g.Name + ".xml"
}

// Options configures assembly.
type Options struct {
	AppDir         string
	BaseURL        string
	Exclude        *rules.Set // Routes kept out of the pages group
	Markers        []string   // Page markers; empty uses routes.DefaultMarkers
	PageChangeFreq string
	PagePriority   float64
	Datasets       []Dataset
	Now            func() time.Time // Stamp for dataset entries; defaults to time.Now
	Logger         *zap.Logger
}

func (o *Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Assemble builds the pages group followed by one group per dataset, in
// configuration order. Groups may be empty.
func Assemble(opts Options) []Group {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	groups := []Group{pagesGroup(opts, log)}

	now := opts.now().UTC()
	for _, ds := range opts.Datasets {
		g := Group{Name: ds.Name}
		seen := make(map[string]bool)
		for _, v := range LoadValues(ds.File, log) {
			route := types.NormalizePath(Expand(ds.Template, v))
			if seen[route] {
				continue
			}
			seen[route] = true
			g.Entries = append(g.Entries, types.SitemapEntry{
				Loc:        JoinURL(opts.BaseURL, route),
				LastMod:    now,
				ChangeFreq: ds.ChangeFreq,
				Priority:   ds.Priority,
			})
		}
		log.Debug("assembled dataset group", zap.String("group", ds.Name), zap.Int("entries", len(g.Entries)))
		groups = append(groups, g)
	}
	return groups
}

func pagesGroup(opts Options, log *zap.Logger) Group {
	entries := routes.Discover(opts.AppDir, routes.Options{Markers: opts.Markers, Logger: log})

	g := Group{Name: PagesGroup}
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Route] {
			continue
		}
		seen[e.Route] = true
		if r, excluded := opts.Exclude.Match(e.Route); excluded {
			log.Debug("route excluded from sitemap", zap.String("route", e.Route), zap.String("rule", r.Label()))
			continue
		}
		g.Entries = append(g.Entries, types.SitemapEntry{
			Loc:        JoinURL(opts.BaseURL, e.Route),
			LastMod:    e.LastModified.UTC(),
			ChangeFreq: opts.PageChangeFreq,
			Priority:   opts.PagePriority,
		})
	}
	return g
}

// JoinURL appends route to base. The root route yields base + "/".
func JoinURL(base, route string) string {
	return strings.TrimRight(base, "/") + types.NormalizePath(route)
}
