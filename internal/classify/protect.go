// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package classify decides which discovered routes are protected, which are
// pruning candidates and why, and which referenced paths lead nowhere.
package classify

import (
	"github.com/petar-djukic/routegraph/internal/rules"
	"github.com/petar-djukic/routegraph/pkg/types"
)

// Protector answers whether a route must never be pruned.
type Protector struct {
	set *rules.Set
}

// NewProtector builds a Protector over a compiled rule set. A nil set
// protects nothing.
func NewProtector(set *rules.Set) *Protector {
	return &Protector{set: set}
}

// IsProtected is a pure predicate over the route string.
func (p *Protector) IsProtected(route string) bool {
	return p != nil && p.set.Matches(route)
}

// Protected returns the source files of protected entries.
func (p *Protector) Protected(entries []types.RouteEntry) map[string]bool {
	out := make(map[string]bool)
	for _, e := range entries {
		if p.IsProtected(e.Route) {
			out[e.SourceFile] = true
		}
	}
	return out
}
