// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refscan

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/petar-djukic/routegraph/pkg/types"
)

// Idiom is one recognized literal-reference syntax. Pattern captures the
// path in its first non-empty capture group.
type Idiom struct {
	Name    string
	Pattern *regexp.Regexp
	Exts    []string // File extensions the idiom applies to; empty means all
}

func (i Idiom) appliesTo(ext string) bool {
	if len(i.Exts) == 0 {
		return true
	}
	for _, e := range i.Exts {
		if e == ext {
			return true
		}
	}
	return false
}

// literal matches a single-, double- or backtick-quoted string starting with
// "/". Backtick literals containing ${ are interpolated and never match.
const literal = `(?:"(/[^"\s]*)"|'(/[^'\s]*)'|` + "`" + `(/[^` + "`" + `\s$]*)` + "`" + `)`

// attrValue is a JSX or HTML attribute value: a braced literal or a bare
// quoted one. The trailing terminators reject literals that continue into
// a concatenation.
const attrValue = `(?:\{\s*` + literal + `\s*\}|` + literal + `(?:\s|/?>|$))`

const (
	endArg  = `\s*[,)]`
	endProp = `(?:\s*[,}]|\s*$)`
)

// DefaultIdioms lists the reference idioms recognized out of the box.
// Only string literals are recognized: paths assembled by concatenation,
// interpolation or variables are invisible to the scanner.
var DefaultIdioms = []Idiom{
	{
		Name:    "href",
		Pattern: regexp.MustCompile(`\bhref\s*=\s*` + attrValue),
	},
	{
		Name:    "link-component",
		Pattern: regexp.MustCompile(`<(?:Link|NavLink|Navigate)\b[^>]*?\b(?:href|to)\s*=\s*` + attrValue),
	},
	{
		Name:    "link-object",
		Pattern: regexp.MustCompile(`\bpathname\s*:\s*` + literal + endProp),
	},
	{
		Name:    "href-object",
		Pattern: regexp.MustCompile(`\bhref\s*:\s*` + literal + endProp),
	},
	{
		Name:    "navigate",
		Pattern: regexp.MustCompile(`\b(?:router\.(?:push|replace|prefetch)|navigate|redirect|permanentRedirect)\s*\(\s*` + literal + endArg),
	},
	{
		Name:    "server-redirect",
		Pattern: regexp.MustCompile(`\b(?:NextResponse|Response|res)\.redirect\s*\(\s*(?:\d{3}\s*,\s*)?(?:new\s+URL\s*\(\s*)?` + literal + endArg),
	},
	{
		Name:    "redirect-config",
		Pattern: regexp.MustCompile(`\bdestination\s*:\s*` + literal + endProp),
	},
	{
		Name:    "markdown-link",
		Pattern: regexp.MustCompile(`\]\((/[^)\s]*)(?:\s+"[^"]*")?\)`),
		Exts:    []string{".md", ".mdx"},
	},
}

// ExtractReferences returns every internal-path literal in content. The
// extension of file selects the comment stripper and applicable idioms;
// .html files are parsed as documents instead. Paths are normalized;
// duplicates within the file are kept (one per occurrence).
func ExtractReferences(ctx context.Context, file string, content []byte, idioms []Idiom) []types.Reference {
	ext := strings.ToLower(filepath.Ext(file))
	if ext == ".html" || ext == ".htm" {
		return extractHTML(file, content)
	}

	text := StripComments(ctx, content, ext)

	var refs []types.Reference
	for _, idiom := range idioms {
		if !idiom.appliesTo(ext) {
			continue
		}
		for _, loc := range idiom.Pattern.FindAllSubmatchIndex(text, -1) {
			start, end := firstGroup(loc)
			if start < 0 {
				continue
			}
			p := string(text[start:end])
			if !isInternalPath(p) {
				continue
			}
			refs = append(refs, types.Reference{
				Path:       types.NormalizePath(p),
				SourceFile: file,
				Line:       bytes.Count(text[:start], []byte("\n")) + 1,
				Idiom:      idiom.Name,
			})
		}
	}
	return refs
}

// firstGroup returns the byte range of the first capture group that
// participated in the match.
func firstGroup(loc []int) (int, int) {
	for g := 2; g+1 < len(loc); g += 2 {
		if loc[g] >= 0 && loc[g+1] > loc[g] {
			return loc[g], loc[g+1]
		}
	}
	return -1, -1
}

// isInternalPath rejects protocol-relative URLs ("//cdn...").
func isInternalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}
