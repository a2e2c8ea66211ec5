// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "time"

// SitemapEntry is one <url> element of a sitemap document.
type SitemapEntry struct {
	Loc        string    // Absolute URL
	LastMod    time.Time // Rendered as RFC 3339
	ChangeFreq string    // Optional; empty omits the element
	Priority   float64   // Optional; 0 omits the element
}
