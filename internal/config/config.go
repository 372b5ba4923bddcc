package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flatcopy/internal/errors"
	"flatcopy/internal/filter"
)

// Built-in defaults.
const (
	DefaultSourceDir = "."
	DefaultDestDir   = "./claude_files"
	DefaultJobs      = 1
)

// DefaultIgnoredDirs are always pruned, whatever the preset or config file
// adds.
var DefaultIgnoredDirs = []string{
	".git",
	".idea",
	".vscode",
	"node_modules",
	"target",
	"build",
	"dist",
	"__pycache__",
}

// Config is the fully resolved configuration for one run. It is built once
// by Resolve and not modified afterwards.
type Config struct {
	SourceDir          string   `yaml:"source_dir"`          // Absolute root to traverse
	DestDir            string   `yaml:"dest_dir"`            // Absolute output directory
	IgnoredDirs        []string `yaml:"ignored_dirs"`        // Built-ins plus additions, sorted
	TargetDirs         []string `yaml:"target_dirs"`         // Relative to SourceDir; empty = whole tree
	IncludedExtensions []string `yaml:"included_extensions"` // Normalized; empty = no include filter
	ExcludedExtensions []string `yaml:"excluded_extensions"` // Normalized; checked after include
	DryRun             bool     `yaml:"dry_run"`             // Plan only, write nothing
	Jobs               int      `yaml:"jobs"`                // Concurrent copies
	Preset             string   `yaml:"preset,omitempty"`    // Applied preset, if any
}

// Layer is one source of settings. Nil fields are unset and leave the layer
// below in effect; a non-nil empty slice explicitly clears a list.
type Layer struct {
	SourceDir             *string
	DestDir               *string
	AdditionalIgnoredDirs []string
	TargetDirs            []string
	ExcludedExtensions    []string
	IncludedExtensions    []string
	DryRun                *bool
	Jobs                  *int
}

// Over returns base with every field set in l taking precedence.
func (l Layer) Over(base Layer) Layer {
	out := base
	if l.SourceDir != nil {
		out.SourceDir = l.SourceDir
	}
	if l.DestDir != nil {
		out.DestDir = l.DestDir
	}
	if l.AdditionalIgnoredDirs != nil {
		out.AdditionalIgnoredDirs = l.AdditionalIgnoredDirs
	}
	if l.TargetDirs != nil {
		out.TargetDirs = l.TargetDirs
	}
	if l.ExcludedExtensions != nil {
		out.ExcludedExtensions = l.ExcludedExtensions
	}
	if l.IncludedExtensions != nil {
		out.IncludedExtensions = l.IncludedExtensions
	}
	if l.DryRun != nil {
		out.DryRun = l.DryRun
	}
	if l.Jobs != nil {
		out.Jobs = l.Jobs
	}
	return out
}

// Sources names everything Resolve merges. Flags holds only the flags the
// user set explicitly.
type Sources struct {
	Flags      Layer
	ConfigFile string
	Preset     string
}

// Resolve merges the layers with precedence
// explicit flag > config file > preset > built-in default,
// then validates the result.
func Resolve(src Sources) (*Config, error) {
	var file *FileConfig
	if src.ConfigFile != "" {
		var err error
		file, err = LoadFile(src.ConfigFile)
		if err != nil {
			return nil, err
		}
	}

	presetName := strings.TrimSpace(src.Preset)
	if presetName == "" && file != nil {
		presetName = strings.TrimSpace(file.Preset)
	}

	merged := defaultLayer()
	if presetName != "" {
		preset, err := LookupPreset(presetName)
		if err != nil {
			return nil, err
		}
		merged = preset.Layer().Over(merged)
	}
	if file != nil {
		merged = file.Layer().Over(merged)
	}
	merged = src.Flags.Over(merged)

	cfg, err := build(merged)
	if err != nil {
		return nil, err
	}
	cfg.Preset = presetName
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New returns the configuration used when nothing is supplied.
func New() *Config {
	cfg, err := build(defaultLayer())
	if err != nil {
		// Only reachable if the working directory cannot be determined.
		return &Config{
			SourceDir:   DefaultSourceDir,
			DestDir:     DefaultDestDir,
			IgnoredDirs: append([]string(nil), DefaultIgnoredDirs...),
			Jobs:        DefaultJobs,
		}
	}
	return cfg
}

func defaultLayer() Layer {
	source, dest := DefaultSourceDir, DefaultDestDir
	dryRun, jobs := false, DefaultJobs
	return Layer{
		SourceDir: &source,
		DestDir:   &dest,
		DryRun:    &dryRun,
		Jobs:      &jobs,
	}
}

func build(l Layer) (*Config, error) {
	source, err := absPath("source_dir", deref(l.SourceDir, DefaultSourceDir))
	if err != nil {
		return nil, err
	}
	dest, err := absPath("dest_dir", deref(l.DestDir, DefaultDestDir))
	if err != nil {
		return nil, err
	}

	jobs := DefaultJobs
	if l.Jobs != nil {
		jobs = *l.Jobs
	}

	return &Config{
		SourceDir:          source,
		DestDir:            dest,
		IgnoredDirs:        unionSorted(DefaultIgnoredDirs, l.AdditionalIgnoredDirs),
		TargetDirs:         cleanTargets(l.TargetDirs),
		IncludedExtensions: filter.NormalizeExtensions(l.IncludedExtensions),
		ExcludedExtensions: filter.NormalizeExtensions(l.ExcludedExtensions),
		DryRun:             l.DryRun != nil && *l.DryRun,
		Jobs:               jobs,
	}, nil
}

// Validate checks settings that cannot be expressed by the types alone.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}
	if c.SourceDir == "" {
		return errors.NewConfigError("source directory is required", "source_dir", errors.InvalidConfig, nil)
	}
	if c.DestDir == "" {
		return errors.NewConfigError("destination directory is required", "dest_dir", errors.InvalidConfig, nil)
	}
	if filepath.Clean(c.SourceDir) == filepath.Clean(c.DestDir) {
		return errors.NewConfigError("source and destination must differ", c.DestDir, errors.ConflictingOptions, nil)
	}
	if c.Jobs < 1 {
		return errors.NewConfigError("jobs must be >= 1", "jobs", errors.InvalidConfig, nil)
	}
	for _, t := range c.TargetDirs {
		if filepath.IsAbs(t) {
			return errors.NewConfigError("target directories must be relative to the source directory", t, errors.InvalidConfig, nil)
		}
	}
	return nil
}

// SplitList parses a comma-separated flag value. Blank entries are dropped;
// the result is never nil, so an explicitly empty flag clears the list.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func absPath(param, p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.NewConfigError("path must not be empty", param, errors.InvalidConfig, nil)
	}
	if strings.HasPrefix(p, "~"+string(filepath.Separator)) || p == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.NewConfigError("cannot resolve path", param, errors.InvalidConfig, err)
	}
	return abs, nil
}

func cleanTargets(targets []string) []string {
	out := make([]string, 0, len(targets))
	seen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		t = filepath.Clean(filepath.FromSlash(t))
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func unionSorted(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, item := range list {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}

func deref(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
