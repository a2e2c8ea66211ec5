// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sitemap

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"time"

	"github.com/petar-djukic/routegraph/pkg/types"
)

// Namespace is the sitemap protocol namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// urlSet is the root element of a sitemap document.
type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// sitemapIndex is the root element of a sitemap index document.
type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []indexEntry `xml:"sitemap"`
}

type indexEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// MarshalURLSet renders entries as a urlset document with XML header.
func MarshalURLSet(entries []types.SitemapEntry) ([]byte, error) {
	doc := urlSet{Xmlns: Namespace, URLs: make([]urlEntry, 0, len(entries))}
	for _, e := range entries {
		u := urlEntry{
			Loc:        e.Loc,
			LastMod:    formatTime(e.LastMod),
			ChangeFreq: e.ChangeFreq,
		}
		if e.Priority > 0 {
			u.Priority = strconv.FormatFloat(e.Priority, 'f', 1, 64)
		}
		doc.URLs = append(doc.URLs, u)
	}
	return marshal(doc)
}

// MarshalIndex renders a sitemap index listing locs, all stamped with
// lastMod.
func MarshalIndex(locs []string, lastMod time.Time) ([]byte, error) {
	doc := sitemapIndex{Xmlns: Namespace, Sitemaps: make([]indexEntry, 0, len(locs))}
	for _, loc := range locs {
		doc.Sitemaps = append(doc.Sitemaps, indexEntry{Loc: loc, LastMod: formatTime(lastMod)})
	}
	return marshal(doc)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
