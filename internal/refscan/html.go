// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package refscan

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/petar-djukic/routegraph/pkg/types"
)

// extractHTML returns the internal hrefs of anchors and image-map areas.
// The HTML parser drops comments, so commented-out anchors never match.
// Line numbers are not tracked for HTML documents.
func extractHTML(file string, content []byte) []types.Reference {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil
	}

	var refs []types.Reference
	doc.Find("a[href], area[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if !isInternalPath(href) {
			return
		}
		refs = append(refs, types.Reference{
			Path:       types.NormalizePath(href),
			SourceFile: file,
			Idiom:      "html-anchor",
		})
	})
	return refs
}
