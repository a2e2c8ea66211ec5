// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "sort"

// Reference is a single literal internal-path occurrence found in source.
type Reference struct {
	Path       string // Normalized path
	SourceFile string // File the literal was found in
	Line       int    // Line number (1-based)
	Idiom      string // Name of the idiom that matched
}

// ReferenceSet is a deduplicated set of normalized paths. It also records
// which source files referenced each path.
//
// A ReferenceSet is not safe for concurrent use; concurrent producers should
// each fill their own set and Merge them afterwards.
type ReferenceSet struct {
	paths map[string]map[string]struct{}
}

// NewReferenceSet returns an empty set.
func NewReferenceSet() *ReferenceSet {
	return &ReferenceSet{paths: make(map[string]map[string]struct{})}
}

// Add inserts path (normalized) with the file it came from. An empty source
// is allowed.
func (s *ReferenceSet) Add(path, source string) {
	key := NormalizePath(path)
	srcs, ok := s.paths[key]
	if !ok {
		srcs = make(map[string]struct{})
		s.paths[key] = srcs
	}
	if source != "" {
		srcs[source] = struct{}{}
	}
}

// Has reports whether path (normalized) is in the set.
func (s *ReferenceSet) Has(path string) bool {
	if s == nil {
		return false
	}
	_, ok := s.paths[NormalizePath(path)]
	return ok
}

// Len returns the number of distinct paths.
func (s *ReferenceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// Paths returns all distinct paths, sorted.
func (s *ReferenceSet) Paths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Sources returns the sorted files that referenced path.
func (s *ReferenceSet) Sources(path string) []string {
	if s == nil {
		return nil
	}
	srcs := s.paths[NormalizePath(path)]
	out := make([]string, 0, len(srcs))
	for f := range srcs {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Merge adds every path and source of other into s.
func (s *ReferenceSet) Merge(other *ReferenceSet) {
	if other == nil {
		return
	}
	for p, srcs := range other.paths {
		dst, ok := s.paths[p]
		if !ok {
			dst = make(map[string]struct{}, len(srcs))
			s.paths[p] = dst
		}
		for f := range srcs {
			dst[f] = struct{}{}
		}
	}
}
