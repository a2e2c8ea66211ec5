// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package classify

import (
	"github.com/petar-djukic/routegraph/internal/routes"
	"github.com/petar-djukic/routegraph/internal/rules"
	"github.com/petar-djukic/routegraph/pkg/types"
)

// Classifier assigns an orphan reason to each unprotected route.
type Classifier struct {
	legacy *rules.Set
}

// NewClassifier returns a Classifier that treats routes matched by legacy as
// LegacyPattern orphans.
func NewClassifier(legacy *rules.Set) *Classifier {
	return &Classifier{legacy: legacy}
}

// Classify returns one record per entry that is neither protected nor
// referenced, in entry order. protected is keyed by SourceFile. A legacy
// match wins over the reference check, so a legacy route is a candidate
// even when something still links to it.
//
// A dynamic entry counts as referenced when any referenced path fits its
// template.
func (c *Classifier) Classify(entries []types.RouteEntry, protected map[string]bool, refs *types.ReferenceSet) []types.OrphanRecord {
	var paths []string
	var records []types.OrphanRecord

	for _, e := range entries {
		if protected[e.SourceFile] {
			continue
		}

		var reason types.OrphanReason
		switch {
		case c.legacy.Matches(e.Route):
			reason = types.LegacyPattern
		case e.Dynamic:
			if paths == nil {
				paths = refs.Paths()
			}
			if anyMatchesTemplate(e.Route, paths) {
				continue
			}
			reason = types.NoInboundLinks
		case refs.Has(e.Route):
			continue
		default:
			reason = types.NoInboundLinks
		}

		records = append(records, types.OrphanRecord{
			SourceFile: e.SourceFile,
			Route:      e.Route,
			Reason:     reason,
		})
	}
	return records
}

func anyMatchesTemplate(template string, paths []string) bool {
	for _, p := range paths {
		if routes.MatchTemplate(template, p) {
			return true
		}
	}
	return false
}
