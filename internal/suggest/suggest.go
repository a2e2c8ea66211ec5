// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package suggest finds the closest known route for a path that matches
// nothing, so a broken link report can propose its likely target.
package suggest

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultThreshold is the minimum similarity for a suggestion.
const DefaultThreshold = 0.6

// Match is a suggested candidate with its similarity score.
type Match struct {
	Candidate  string
	Similarity float64
}

// Closest returns the candidate most similar to target. Ties keep the
// earlier candidate. ok is false when no candidate reaches threshold; a
// threshold <= 0 uses DefaultThreshold.
func Closest(target string, candidates []string, threshold float64) (Match, bool) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var best Match
	found := false
	for _, c := range candidates {
		sim := Similarity(target, c)
		if sim < threshold {
			continue
		}
		if !found || sim > best.Similarity {
			best = Match{Candidate: c, Similarity: sim}
			found = true
		}
	}
	return best, found
}

// Similarity computes the Levenshtein-based similarity ratio between two
// strings using the go-diff library. Returns a value between 0.0 and 1.0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
