package walk

import (
	"strings"

	"github.com/gobwas/glob"

	"flatcopy/internal/errors"
)

// Matcher tests directory names against the ignore list. Plain names match
// exactly and case-sensitively; names containing glob metacharacters are
// compiled as patterns ("*.egg-info", "cmake-build-*").
type Matcher struct {
	names    map[string]struct{}
	patterns []glob.Glob
}

// NewMatcher compiles names. An invalid pattern is a configuration error.
func NewMatcher(names []string) (*Matcher, error) {
	m := &Matcher{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !strings.ContainsAny(name, "*?[{") {
			m.names[name] = struct{}{}
			continue
		}
		g, err := glob.Compile(name)
		if err != nil {
			return nil, errors.NewConfigError("invalid ignored directory pattern", name, errors.InvalidConfig, err)
		}
		m.patterns = append(m.patterns, g)
	}
	return m, nil
}

// Match reports whether a directory with this base name is ignored.
func (m *Matcher) Match(name string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.names[name]; ok {
		return true
	}
	for _, g := range m.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}
