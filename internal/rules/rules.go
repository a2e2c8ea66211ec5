// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package rules compiles route-matching rules that are supplied as data:
// protected routes, legacy URL shapes, sitemap exclusions. Retargeting the
// tool to another routing convention only changes configuration.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/petar-djukic/routegraph/internal/routes"
	"github.com/petar-djukic/routegraph/pkg/types"
)

// ErrInvalidRule is returned when a rule sets zero or several matchers, or
// when its pattern does not compile.
var ErrInvalidRule = errors.New("invalid rule")

// Rule matches routes. Exactly one of the matcher fields must be set.
type Rule struct {
	Name     string `mapstructure:"name" yaml:"name,omitempty"`
	Exact    string `mapstructure:"exact" yaml:"exact,omitempty"`       // Route equality
	Prefix   string `mapstructure:"prefix" yaml:"prefix,omitempty"`     // Route equals prefix or continues with "/"
	Template string `mapstructure:"template" yaml:"template,omitempty"` // Route template with [param] segments
	Glob     string `mapstructure:"glob" yaml:"glob,omitempty"`         // doublestar pattern
	Regex    string `mapstructure:"regex" yaml:"regex,omitempty"`       // Go regular expression
}

// Label returns Name, or the pattern when the rule is unnamed.
func (r Rule) Label() string {
	if r.Name != "" {
		return r.Name
	}
	for _, p := range []string{r.Exact, r.Prefix, r.Template, r.Glob, r.Regex} {
		if p != "" {
			return p
		}
	}
	return ""
}

type matcher func(route string) bool

type compiled struct {
	rule  Rule
	match matcher
}

// Set is an ordered, compiled list of rules. The zero value and nil match
// nothing.
type Set struct {
	rules []compiled
}

// Compile validates and compiles rules in order.
func Compile(rs []Rule) (*Set, error) {
	s := &Set{rules: make([]compiled, 0, len(rs))}
	for i, r := range rs {
		m, err := compileRule(r)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d (%s): %v", ErrInvalidRule, i, r.Label(), err)
		}
		s.rules = append(s.rules, compiled{rule: r, match: m})
	}
	return s, nil
}

// MustCompile is like Compile but panics on error. Intended for defaults
// and tests.
func MustCompile(rs []Rule) *Set {
	s, err := Compile(rs)
	if err != nil {
		panic(err)
	}
	return s
}

// Match returns the first rule matching route.
func (s *Set) Match(route string) (Rule, bool) {
	if s == nil {
		return Rule{}, false
	}
	route = types.NormalizePath(route)
	for _, c := range s.rules {
		if c.match(route) {
			return c.rule, true
		}
	}
	return Rule{}, false
}

// Matches reports whether any rule matches route.
func (s *Set) Matches(route string) bool {
	_, ok := s.Match(route)
	return ok
}

// Len returns the number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

func compileRule(r Rule) (matcher, error) {
	set := 0
	for _, p := range []string{r.Exact, r.Prefix, r.Template, r.Glob, r.Regex} {
		if p != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of exact, prefix, template, glob, regex must be set (got %d)", set)
	}

	switch {
	case r.Exact != "":
		want := types.NormalizePath(r.Exact)
		return func(route string) bool { return route == want }, nil

	case r.Prefix != "":
		prefix := types.NormalizePath(r.Prefix)
		if prefix == "/" {
			return func(string) bool { return true }, nil
		}
		return func(route string) bool {
			return route == prefix || strings.HasPrefix(route, prefix+"/")
		}, nil

	case r.Template != "":
		tpl := types.NormalizePath(r.Template)
		return func(route string) bool { return routes.MatchTemplate(tpl, route) }, nil

	case r.Glob != "":
		if !doublestar.ValidatePattern(r.Glob) {
			return nil, fmt.Errorf("bad glob %q", r.Glob)
		}
		pattern := r.Glob
		return func(route string) bool {
			ok, _ := doublestar.Match(pattern, route)
			return ok
		}, nil

	default:
		re, err := regexp.Compile(r.Regex)
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil
	}
}
