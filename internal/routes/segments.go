// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package routes

import (
	"path/filepath"
	"strings"
)

// SegmentKind classifies one directory name of the routing tree.
type SegmentKind int

const (
	Static           SegmentKind = iota // Literal URL segment
	Group                               // (name): organizational only
	Private                             // _name: excluded from routing
	Parallel                            // @slot: parallel route slot
	Dynamic                             // [param]
	CatchAll                            // [...param]
	OptionalCatchAll                    // [[...param]]
)

// String returns the human-readable name of the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case Static:
		return "Static"
	case Group:
		return "Group"
	case Private:
		return "Private"
	case Parallel:
		return "Parallel"
	case Dynamic:
		return "Dynamic"
	case CatchAll:
		return "CatchAll"
	case OptionalCatchAll:
		return "OptionalCatchAll"
	default:
		return "Unknown"
	}
}

// ClassifySegment returns the kind of a single path segment.
func ClassifySegment(seg string) SegmentKind {
	switch {
	case len(seg) >= 2 && seg[0] == '(' && seg[len(seg)-1] == ')':
		return Group
	case strings.HasPrefix(seg, "_"):
		return Private
	case strings.HasPrefix(seg, "@"):
		return Parallel
	case strings.HasPrefix(seg, "[[...") && strings.HasSuffix(seg, "]]"):
		return OptionalCatchAll
	case strings.HasPrefix(seg, "[...") && strings.HasSuffix(seg, "]"):
		return CatchAll
	case len(seg) >= 2 && seg[0] == '[' && seg[len(seg)-1] == ']':
		return Dynamic
	default:
		return Static
	}
}

// IsDynamic reports whether the kind stands for a runtime parameter.
func (k SegmentKind) IsDynamic() bool {
	return k == Dynamic || k == CatchAll || k == OptionalCatchAll
}

// hidden reports whether segments of this kind never appear in URLs.
func (k SegmentKind) hidden() bool {
	return k == Group || k == Private || k == Parallel
}

// RouteFromDir computes the URL route implied by a directory path relative
// to the routing root. Group, private and parallel segments are dropped;
// dynamic segments are kept verbatim and reported through dynamic.
// The result is a pure function of rel.
func RouteFromDir(rel string) (route string, dynamic bool) {
	rel = filepath.ToSlash(rel)

	var kept []string
	for _, seg := range strings.Split(rel, "/") {
		if seg == "" || seg == "." {
			continue
		}
		kind := ClassifySegment(seg)
		if kind.hidden() {
			continue
		}
		if kind.IsDynamic() {
			dynamic = true
		}
		kept = append(kept, seg)
	}

	if len(kept) == 0 {
		return "/", dynamic
	}
	return "/" + strings.Join(kept, "/"), dynamic
}

// MatchTemplate reports whether path is an instance of the route template.
// In the template, [p] matches exactly one segment, [...p] one or more, and
// [[...p]] zero or more. Any other template segment must match literally.
// A literal dynamic-folder route matches its own template.
func MatchTemplate(template, path string) bool {
	return matchSegments(splitRoute(template), splitRoute(path))
}

func matchSegments(tpl, segs []string) bool {
	if len(tpl) == 0 {
		return len(segs) == 0
	}

	switch ClassifySegment(tpl[0]) {
	case OptionalCatchAll:
		for n := 0; n <= len(segs); n++ {
			if matchSegments(tpl[1:], segs[n:]) {
				return true
			}
		}
		return false
	case CatchAll:
		for n := 1; n <= len(segs); n++ {
			if matchSegments(tpl[1:], segs[n:]) {
				return true
			}
		}
		return false
	case Dynamic:
		if len(segs) == 0 {
			return false
		}
		return matchSegments(tpl[1:], segs[1:])
	default:
		if len(segs) == 0 || segs[0] != tpl[0] {
			return false
		}
		return matchSegments(tpl[1:], segs[1:])
	}
}

// splitRoute splits a URL path into its non-empty segments.
func splitRoute(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
