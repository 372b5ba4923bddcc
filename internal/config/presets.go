package config

import (
	"sort"
	"strings"

	"flatcopy/internal/errors"
)

// PresetName identifies one of the built-in presets.
type PresetName string

// Known presets.
const (
	PresetNextJS PresetName = "nextjs"
	PresetRust   PresetName = "rust"
	PresetGo     PresetName = "go"
)

// Preset is a named bundle of defaults for a common project shape. It sits
// below the config file and explicit flags.
type Preset struct {
	Name               PresetName `yaml:"name"`
	Description        string     `yaml:"description"`
	IgnoredDirs        []string   `yaml:"ignored_dirs"`
	IncludedExtensions []string   `yaml:"included_extensions"`
	ExcludedExtensions []string   `yaml:"excluded_extensions"`
	TargetDirs         []string   `yaml:"target_dirs"`
}

var presets = map[PresetName]Preset{
	PresetNextJS: {
		Name:               PresetNextJS,
		Description:        "Next.js / React application sources",
		IgnoredDirs:        []string{"node_modules", ".next", "out", ".git"},
		IncludedExtensions: []string{"js", "jsx", "ts", "tsx", "json", "md", "css"},
		ExcludedExtensions: []string{},
		TargetDirs:         []string{".", "src", "components", "styles", "public"},
	},
	PresetRust: {
		Name:               PresetRust,
		Description:        "Cargo crate sources, tests, examples and benches",
		IgnoredDirs:        []string{"target", ".git", ".idea", ".vscode"},
		IncludedExtensions: []string{"rs", "toml", "md", "json", "yml", "yaml"},
		ExcludedExtensions: []string{},
		TargetDirs:         []string{".", "src", "tests", "examples", "benches"},
	},
	PresetGo: {
		Name:               PresetGo,
		Description:        "Go module sources and build files",
		IgnoredDirs:        []string{"vendor", "testdata", ".git", "bin"},
		IncludedExtensions: []string{"go", "mod", "md", "yaml", "yml", "toml"},
		ExcludedExtensions: []string{"sum"},
		TargetDirs:         []string{},
	},
}

// Layer converts the preset into a configuration layer.
func (p Preset) Layer() Layer {
	return Layer{
		AdditionalIgnoredDirs: clone(p.IgnoredDirs),
		TargetDirs:            clone(p.TargetDirs),
		IncludedExtensions:    clone(p.IncludedExtensions),
		ExcludedExtensions:    clone(p.ExcludedExtensions),
	}
}

// LookupPreset returns the preset called name (case-insensitive).
func LookupPreset(name string) (Preset, error) {
	key := PresetName(strings.ToLower(strings.TrimSpace(name)))
	p, ok := presets[key]
	if !ok {
		return Preset{}, errors.NewConfigError(
			"unknown preset (available: "+strings.Join(PresetNames(), ", ")+")",
			name, errors.UnknownPreset, nil)
	}
	return p, nil
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}

// Presets returns every preset, sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, n := range PresetNames() {
		out = append(out, presets[PresetName(n)])
	}
	return out
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}
