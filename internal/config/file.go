package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"flatcopy/internal/errors"
)

// FileConfig mirrors the keys accepted in a config file. Absent keys decode
// to nil and leave lower layers in effect.
type FileConfig struct {
	Preset                string   `yaml:"preset,omitempty" toml:"preset,omitempty"`
	SourceDir             *string  `yaml:"source_dir,omitempty" toml:"source_dir,omitempty"`
	DestDir               *string  `yaml:"dest_dir,omitempty" toml:"dest_dir,omitempty"`
	AdditionalIgnoredDirs []string `yaml:"additional_ignored_dirs,omitempty" toml:"additional_ignored_dirs,omitempty"`
	TargetDirs            []string `yaml:"target_dirs,omitempty" toml:"target_dirs,omitempty"`
	ExcludedExtensions    []string `yaml:"excluded_extensions,omitempty" toml:"excluded_extensions,omitempty"`
	IncludedExtensions    []string `yaml:"included_extensions,omitempty" toml:"included_extensions,omitempty"`
	DryRun                *bool    `yaml:"dry_run,omitempty" toml:"dry_run,omitempty"`
	Jobs                  *int     `yaml:"jobs,omitempty" toml:"jobs,omitempty"`
}

// Layer converts the file contents into a configuration layer.
func (f *FileConfig) Layer() Layer {
	return Layer{
		SourceDir:             f.SourceDir,
		DestDir:               f.DestDir,
		AdditionalIgnoredDirs: f.AdditionalIgnoredDirs,
		TargetDirs:            f.TargetDirs,
		ExcludedExtensions:    f.ExcludedExtensions,
		IncludedExtensions:    f.IncludedExtensions,
		DryRun:                f.DryRun,
		Jobs:                  f.Jobs,
	}
}

// LoadFile reads a YAML (.yaml, .yml) or TOML (.toml) config file. Unknown
// keys are rejected so typos do not silently fall back to defaults.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("config file not found", path, errors.ConfigNotFound, err)
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(path, data)
	case ".toml":
		return decodeTOML(path, data)
	default:
		return nil, errors.NewConfigError("unsupported config file format (want .yaml, .yml or .toml)", path, errors.InvalidConfig, nil)
	}
}

func decodeYAML(path string, data []byte) (*FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	return &fc, nil
}

func decodeTOML(path string, data []byte) (*FileConfig, error) {
	var fc FileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, errors.NewConfigError("unknown keys in config file "+path, strings.Join(keys, ", "), errors.InvalidConfig, nil)
	}
	return &fc, nil
}

// SaveFile writes cfg as YAML, creating parent directories.
func SaveFile(cfg *FileConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}
