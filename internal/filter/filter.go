// Package filter decides which walked files survive extension rules.
package filter

import (
	"path/filepath"
	"sort"
	"strings"
)

// Filter is a pure predicate over file paths. The zero value accepts
// everything.
type Filter struct {
	included map[string]struct{}
	excluded map[string]struct{}
}

// New builds a filter. Extensions are normalized, so ".RS", "rs" and " rs"
// are the same rule. An extension present in both lists is rejected.
func New(included, excluded []string) *Filter {
	return &Filter{
		included: toSet(NormalizeExtensions(included)),
		excluded: toSet(NormalizeExtensions(excluded)),
	}
}

// Accept reports whether the file at path passes the include and exclude
// rules.
func (f *Filter) Accept(path string) bool {
	ext := Extension(path)
	if len(f.included) > 0 {
		if _, ok := f.included[ext]; !ok {
			return false
		}
	}
	if len(f.excluded) > 0 {
		if _, ok := f.excluded[ext]; ok {
			return false
		}
	}
	return true
}

// Extension returns the lower-cased text after the last dot of the base
// name, or "" when there is no dot.
func Extension(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// NormalizeExtensions trims whitespace and leading dots, lower-cases and
// de-duplicates. Entries that end up empty are dropped. The result is sorted.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimLeft(strings.TrimSpace(e), "."))
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
