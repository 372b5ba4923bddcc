package filter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.rs", "rs"},
		{filepath.Join("src", "main.RS"), "rs"},
		{"archive.tar.gz", "gz"},
		{"Makefile", ""},
		{".gitignore", "gitignore"},
		{"trailing.", ""},
		{filepath.Join("dir.d", "noext"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.path))
		})
	}
}

func TestAccept(t *testing.T) {
	tests := []struct {
		name     string
		included []string
		excluded []string
		path     string
		want     bool
	}{
		{"no rules accepts all", nil, nil, "a.txt", true},
		{"no rules accepts extensionless", nil, nil, "LICENSE", true},
		{"include match", []string{"rs"}, nil, "a.rs", true},
		{"include miss", []string{"rs"}, nil, "a.txt", false},
		{"include is case-insensitive", []string{"RS"}, nil, "lib.Rs", true},
		{"include with leading dot", []string{".rs"}, nil, "a.rs", true},
		{"include rejects extensionless", []string{"rs"}, nil, "Makefile", false},
		{"exclude match", nil, []string{"lock"}, "Cargo.lock", false},
		{"exclude miss", nil, []string{"lock"}, "Cargo.toml", true},
		{"exclude wins on overlap", []string{"rs", "md"}, []string{"md"}, "README.md", false},
		{"overlap keeps others", []string{"rs", "md"}, []string{"md"}, "lib.rs", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.included, tt.excluded)
			assert.Equal(t, tt.want, f.Accept(tt.path))
			// Same input, same answer.
			assert.Equal(t, f.Accept(tt.path), f.Accept(tt.path))
		})
	}
}

func TestZeroValueAcceptsEverything(t *testing.T) {
	var f Filter
	assert.True(t, f.Accept("anything.bin"))
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{" .TS", "tsx", "ts", "", "..", "Json"})
	assert.Equal(t, []string{"json", "ts", "tsx"}, got)
	assert.Empty(t, NormalizeExtensions(nil))
}
