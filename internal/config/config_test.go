package config

import (
	"os"
	"path/filepath"
	"testing"

	"flatcopy/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Resolve(Sources{})
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, wd, cfg.SourceDir)
	assert.Equal(t, filepath.Join(wd, "claude_files"), cfg.DestDir)
	assert.ElementsMatch(t, DefaultIgnoredDirs, cfg.IgnoredDirs)
	assert.Empty(t, cfg.TargetDirs)
	assert.Empty(t, cfg.IncludedExtensions)
	assert.Empty(t, cfg.ExcludedExtensions)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, 1, cfg.Jobs)
	assert.Empty(t, cfg.Preset)

	assert.Equal(t, cfg, New())
}

func TestAdditionalIgnoredDirsAreMerged(t *testing.T) {
	cfg, err := Resolve(Sources{Flags: Layer{AdditionalIgnoredDirs: SplitList("vendor, .cache,,.git")}})
	require.NoError(t, err)

	for _, d := range DefaultIgnoredDirs {
		assert.Contains(t, cfg.IgnoredDirs, d)
	}
	assert.Contains(t, cfg.IgnoredDirs, "vendor")
	assert.Contains(t, cfg.IgnoredDirs, ".cache")
	assert.Len(t, cfg.IgnoredDirs, len(DefaultIgnoredDirs)+2)
}

func TestExtensionsAreNormalized(t *testing.T) {
	cfg, err := Resolve(Sources{Flags: Layer{
		IncludedExtensions: SplitList(".RS,toml"),
		ExcludedExtensions: SplitList("LOCK"),
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"rs", "toml"}, cfg.IncludedExtensions)
	assert.Equal(t, []string{"lock"}, cfg.ExcludedExtensions)
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "flatcopy.yaml", `
dest_dir: /tmp/from-file
included_extensions: [md]
target_dirs: [docs]
jobs: 3
`)

	t.Run("preset below file", func(t *testing.T) {
		cfg, err := Resolve(Sources{ConfigFile: cfgPath, Preset: "rust"})
		require.NoError(t, err)
		// File wins over preset for the keys it sets.
		assert.Equal(t, []string{"md"}, cfg.IncludedExtensions)
		assert.Equal(t, []string{"docs"}, cfg.TargetDirs)
		// Preset still supplies what the file leaves unset.
		assert.Contains(t, cfg.IgnoredDirs, ".idea")
		assert.Equal(t, "rust", cfg.Preset)
		assert.Equal(t, 3, cfg.Jobs)
	})

	t.Run("flags above file", func(t *testing.T) {
		cfg, err := Resolve(Sources{
			ConfigFile: cfgPath,
			Preset:     "rust",
			Flags: Layer{
				IncludedExtensions: SplitList("rs"),
				DestDir:            strPtr(filepath.Join(dir, "out")),
				Jobs:               intPtr(2),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"rs"}, cfg.IncludedExtensions)
		assert.Equal(t, filepath.Join(dir, "out"), cfg.DestDir)
		assert.Equal(t, []string{"docs"}, cfg.TargetDirs)
		assert.Equal(t, 2, cfg.Jobs)
	})

	t.Run("explicitly empty flag clears the list", func(t *testing.T) {
		cfg, err := Resolve(Sources{
			ConfigFile: cfgPath,
			Flags:      Layer{IncludedExtensions: SplitList("")},
		})
		require.NoError(t, err)
		assert.Empty(t, cfg.IncludedExtensions)
	})
}

func TestPresetFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "flatcopy.yml", "preset: nextjs\n")

	cfg, err := Resolve(Sources{ConfigFile: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, "nextjs", cfg.Preset)
	assert.Contains(t, cfg.IncludedExtensions, "tsx")
	assert.Contains(t, cfg.IgnoredDirs, ".next")

	// The flag preset replaces the file's.
	cfg, err = Resolve(Sources{ConfigFile: cfgPath, Preset: "rust"})
	require.NoError(t, err)
	assert.Equal(t, "rust", cfg.Preset)
	assert.NotContains(t, cfg.IgnoredDirs, ".next")
}

func TestTOMLConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "flatcopy.toml", `
source_dir = "."
additional_ignored_dirs = ["vendor"]
excluded_extensions = ["lock", "sum"]
dry_run = true
`)

	cfg, err := Resolve(Sources{ConfigFile: cfgPath})
	require.NoError(t, err)
	assert.Contains(t, cfg.IgnoredDirs, "vendor")
	assert.Equal(t, []string{"lock", "sum"}, cfg.ExcludedExtensions)
	assert.True(t, cfg.DryRun)
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		src  Sources
		kind errors.ErrorKind
	}{
		{"unknown preset", Sources{Preset: "django"}, errors.UnknownPreset},
		{"missing file", Sources{ConfigFile: filepath.Join(dir, "nope.yaml")}, errors.ConfigNotFound},
		{"malformed yaml", Sources{ConfigFile: writeFile(t, dir, "bad.yaml", "target_dirs: [unclosed\n")}, errors.InvalidConfig},
		{"unknown yaml key", Sources{ConfigFile: writeFile(t, dir, "typo.yaml", "dest_dri: out\n")}, errors.InvalidConfig},
		{"malformed toml", Sources{ConfigFile: writeFile(t, dir, "bad.toml", "dest_dir = \n")}, errors.InvalidConfig},
		{"unknown toml key", Sources{ConfigFile: writeFile(t, dir, "typo.toml", "colour = \"red\"\n")}, errors.InvalidConfig},
		{"unsupported format", Sources{ConfigFile: writeFile(t, dir, "cfg.ini", "x=1\n")}, errors.InvalidConfig},
		{"zero jobs", Sources{Flags: Layer{Jobs: intPtr(0)}}, errors.InvalidConfig},
		{"source equals dest", Sources{Flags: Layer{SourceDir: strPtr(dir), DestDir: strPtr(dir)}}, errors.ConflictingOptions},
		{"absolute target", Sources{Flags: Layer{TargetDirs: []string{dir}}}, errors.InvalidConfig},
		{"empty dest", Sources{Flags: Layer{DestDir: strPtr("  ")}}, errors.InvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(tt.src)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.IsConfigError(err), "%v", err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
		})
	}
}

func TestEmptyConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "empty.yaml", "")

	cfg, err := Resolve(Sources{ConfigFile: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Jobs)
}

func TestTargetDirsCleaned(t *testing.T) {
	cfg, err := Resolve(Sources{Flags: Layer{TargetDirs: SplitList("src/, ./src, lib//core, ")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"src", filepath.Join("lib", "core")}, cfg.TargetDirs)
}

func TestLayerOver(t *testing.T) {
	base := Layer{SourceDir: strPtr("a"), DryRun: boolPtr(false), TargetDirs: []string{"x"}}
	top := Layer{DryRun: boolPtr(true)}

	merged := top.Over(base)
	assert.Equal(t, "a", *merged.SourceDir)
	assert.True(t, *merged.DryRun)
	assert.Equal(t, []string{"x"}, merged.TargetDirs)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b,"))
	got := SplitList("")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"go", "nextjs", "rust"}, PresetNames())

	p, err := LookupPreset("RUST")
	require.NoError(t, err)
	assert.Equal(t, PresetRust, p.Name)
	assert.Contains(t, p.IncludedExtensions, "rs")

	// Layers are copies; mutating one does not leak into the table.
	l := p.Layer()
	l.IncludedExtensions[0] = "changed"
	again, _ := LookupPreset("rust")
	assert.NotEqual(t, "changed", again.IncludedExtensions[0])

	_, err = LookupPreset("cobol")
	assert.True(t, errors.IsUnknownPreset(err))
	assert.Len(t, Presets(), 3)
}

func TestSaveFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fc := &FileConfig{
		Preset:             "go",
		DestDir:            strPtr("out"),
		IncludedExtensions: []string{"go"},
		Jobs:               intPtr(4),
	}

	for _, name := range []string{"nested/flatcopy.yaml", "flatcopy.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveFile(fc, path))

		loaded, err := LoadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, "go", loaded.Preset)
		require.NotNil(t, loaded.DestDir)
		assert.Equal(t, "out", *loaded.DestDir)
		assert.Equal(t, []string{"go"}, loaded.IncludedExtensions)
		require.NotNil(t, loaded.Jobs)
		assert.Equal(t, 4, *loaded.Jobs)
		assert.Nil(t, loaded.SourceDir)
	}
}
