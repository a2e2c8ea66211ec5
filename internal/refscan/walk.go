// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refscan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSkipDirs contains directory names the scanner never descends into.
var DefaultSkipDirs = []string{
	"node_modules", ".next", ".git", "dist", "build", "out", "coverage", ".turbo", ".vercel",
}

// DefaultExtensions lists the file types searched for references.
var DefaultExtensions = []string{
	".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".md", ".mdx", ".html",
}

// ignorer matches slash-separated paths relative to a scan root against
// doublestar patterns.
type ignorer struct {
	patterns []string
}

// loadGitignore reads .gitignore from root and converts each line into
// doublestar patterns. Negations are not supported and are dropped. A
// missing file yields an ignorer that matches nothing.
func loadGitignore(root string) ignorer {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return ignorer{}
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		patterns = append(patterns, gitignoreGlobs(line)...)
	}
	return ignorer{patterns: patterns}
}

// gitignoreGlobs translates one .gitignore line. Unanchored names match at
// any depth; a leading or inner slash anchors to the root.
func gitignoreGlobs(line string) []string {
	p := strings.TrimSuffix(line, "/")
	switch {
	case strings.HasPrefix(p, "/"):
		p = strings.TrimPrefix(p, "/")
	case !strings.Contains(p, "/"):
		p = "**/" + p
	}
	if !doublestar.ValidatePattern(p) {
		return nil
	}
	return []string{p, p + "/**"}
}

// with returns an ignorer that also applies extra patterns.
func (g ignorer) with(extra []string) ignorer {
	out := ignorer{patterns: append([]string(nil), g.patterns...)}
	for _, p := range extra {
		if doublestar.ValidatePattern(p) {
			out.patterns = append(out.patterns, p)
		}
	}
	return out
}

func (g ignorer) isIgnored(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range g.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
