// Package model builds the declaration graph for a generated OData client
// model: structural declarations for entity and complex types, enum
// declarations, per-binding operations interfaces, and the api-context
// declaration, plus the renderer that turns the graph into Go source.
package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is one include/exclude filter entry: either a literal name, matched
// as a whole case-insensitively, or a regular expression, matched as an
// unanchored search.
type Pattern struct {
	raw     string
	literal bool
	re      *regexp.Regexp
}

// ParsePattern builds a Pattern from its configuration form. A value written
// /expr/ or /expr/flags (flags drawn from "is") is compiled as a regular
// expression; anything else is a literal name. Literal names have every
// regexp metacharacter escaped before compiling, not just the first dot.
func ParsePattern(value string) (Pattern, error) {
	if expr, flags, ok := splitRegex(value); ok {
		if flags != "" {
			expr = "(?" + flags + ")" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return Pattern{}, fmt.Errorf("pattern %q: %w", value, err)
		}
		return Pattern{raw: value, re: re}, nil
	}
	re, err := regexp.Compile("(?i)^" + regexp.QuoteMeta(value) + "$")
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", value, err)
	}
	return Pattern{raw: value, literal: true, re: re}, nil
}

// MustParsePattern is ParsePattern for statically known patterns.
func MustParsePattern(value string) Pattern {
	p, err := ParsePattern(value)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePatterns parses a configuration list in order.
func ParsePatterns(values []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(values))
	for _, v := range values {
		p, err := ParsePattern(v)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func splitRegex(value string) (expr, flags string, ok bool) {
	if len(value) < 2 || !strings.HasPrefix(value, "/") {
		return "", "", false
	}
	end := strings.LastIndex(value[1:], "/")
	if end < 1 {
		return "", "", false
	}
	end++
	flags = value[end+1:]
	for _, f := range flags {
		if f != 'i' && f != 's' {
			return "", "", false
		}
	}
	return value[1:end], flags, true
}

func (p Pattern) Match(name string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(name)
}

func (p Pattern) String() string { return p.raw }

// Filter decides whether a named metadata element takes part in the generated
// model. A name is included iff the include list is empty or some include
// pattern matches, and no exclude pattern matches. Exclude wins over include.
type Filter struct {
	include []Pattern
	exclude []Pattern
}

func NewFilter(include, exclude []Pattern) *Filter {
	return &Filter{include: include, exclude: exclude}
}

// Included applies the filter to a qualified name: a type name, a
// Type.Property name, a Container.Set name, or an operation name.
func (f *Filter) Included(qualifiedName string) bool {
	if f == nil {
		return true
	}
	for _, p := range f.exclude {
		if p.Match(qualifiedName) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, p := range f.include {
		if p.Match(qualifiedName) {
			return true
		}
	}
	return false
}
