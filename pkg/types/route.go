// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across routegraph packages.
package types

import (
	"strings"
	"time"
)

// RouteEntry is one routable page discovered under the routing root.
type RouteEntry struct {
	SourceFile   string    // Path of the page marker file
	Route        string    // Normalized URL path, e.g. "/about"
	LastModified time.Time // Modification time of SourceFile
	Dynamic      bool      // Route contains at least one dynamic segment
}

// OrphanReason explains why a route is a prune candidate.
type OrphanReason int

const (
	LegacyPattern  OrphanReason = iota + 1 // Route matches a deprecated URL shape
	NoInboundLinks                         // Nothing in the scanned source links to the route
)

// String returns the report label of the reason.
func (r OrphanReason) String() string {
	switch r {
	case LegacyPattern:
		return "legacy-pattern"
	case NoInboundLinks:
		return "no-inbound-links"
	default:
		return "unknown"
	}
}

// OrphanRecord is a non-protected route selected for pruning or review.
type OrphanRecord struct {
	SourceFile string
	Route      string
	Reason     OrphanReason
}

// NormalizePath canonicalizes an internal URL path so that discovered routes
// and scanned references compare equal. Query strings and fragments are
// dropped, a leading slash is ensured, repeated slashes collapse, and the
// trailing slash is removed except for the root.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	var b strings.Builder
	b.Grow(len(p) + 1)
	b.WriteByte('/')
	lastSlash := true
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '/' {
			if lastSlash {
				continue
			}
			lastSlash = true
		} else {
			lastSlash = false
		}
		b.WriteByte(c)
	}

	out := b.String()
	if len(out) > 1 {
		out = strings.TrimSuffix(out, "/")
	}
	return out
}
