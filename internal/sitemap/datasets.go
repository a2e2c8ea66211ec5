// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package sitemap

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Placeholder is replaced by each dataset value in a Dataset template.
const Placeholder = "{value}"

// Dataset enumerates the values of a dynamic route from a JSON file.
type Dataset struct {
	Name       string  `mapstructure:"name" yaml:"name"`                       // Group name; output is sitemap-<name>.xml
	File       string  `mapstructure:"file" yaml:"file"`                       // JSON array of strings
	Template   string  `mapstructure:"template" yaml:"template"`               // Route template containing {value}
	ChangeFreq string  `mapstructure:"changefreq" yaml:"changefreq,omitempty"` // Optional
	Priority   float64 `mapstructure:"priority" yaml:"priority,omitempty"`     // Optional; 0 omits
}

// LoadValues reads a dataset file. A missing file yields no values; an
// unreadable or malformed file is logged and also yields no values.
// Values are trimmed; blanks and duplicates are dropped; order is kept.
func LoadValues(path string, log *zap.Logger) []string {
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("dataset file not found", zap.String("file", path))
		} else {
			log.Warn("cannot read dataset file", zap.String("file", path), zap.Error(err))
		}
		return nil
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn("malformed dataset file", zap.String("file", path), zap.Error(err))
		return nil
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Expand substitutes value into template.
func Expand(template, value string) string {
	return strings.ReplaceAll(template, Placeholder, value)
}
